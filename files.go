package docpatch

import (
	"os"
	"path/filepath"
)

// resolvePath joins a relative path onto root; absolute paths are kept.
func resolvePath(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// readFile reads path and wraps failures as OpErrors.
func readFile(op, path string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, &OpError{Op: op, Kind: KindNotFound, Path: path, Err: err}
	}
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, &OpError{Op: op, Kind: KindExecution, Path: path, Err: err}
	}
	return data, info.Mode().Perm(), nil
}

// writeFile overwrites path with data, keeping its permission bits.
// The data goes to a temp file in the target's directory which is then renamed
// over the target; a symlinked path is written through to the file it points at.
func writeFile(op, path string, data []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return &OpError{Op: op, Kind: KindExecution, Path: path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &OpError{Op: op, Kind: KindExecution, Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return &OpError{Op: op, Kind: KindExecution, Path: path, Err: err}
	}
	return nil
}
