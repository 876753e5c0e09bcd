package docpatch

import (
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"

	"github.com/magefile/mage/sh"
)

// Substitution replaces every line matching Find with the literal Replace.
// Find must stay within the subset shared by RE2 and POSIX ERE so both engines agree.
type Substitution struct {
	Find    string // `^\[CODE\].*`
	Replace string // "[CODE]: https://github.com/rcore-os/rCore_tutorial/tree/deadbeef"
}

// Apply performs the substitution on text, matching line by line like sed.
func (s Substitution) Apply(text string) (string, int, error) {
	re, err := regexp.Compile("(?m)" + s.Find)
	if err != nil {
		return text, 0, fmt.Errorf("compile %q: %w", s.Find, err)
	}
	count := len(re.FindAllStringIndex(text, -1))
	if count == 0 {
		return text, 0, nil
	}
	return re.ReplaceAllLiteralString(text, s.Replace), count, nil
}

// Substituter rewrites a file in place.
// Implementations return the number of replaced lines, or -1 if unknown.
type Substituter interface {
	Substitute(path string, s Substitution) (int, error)
}

// BuiltinSubstituter rewrites files in-process.
type BuiltinSubstituter struct{}

// Substitute implements Substituter.
func (BuiltinSubstituter) Substitute(path string, s Substitution) (int, error) {
	data, mode, err := readFile("commits.read", path)
	if err != nil {
		return 0, err
	}

	out, count, err := s.Apply(string(data))
	if err != nil {
		return 0, &OpError{Op: "commits.substitute", Kind: KindInvalidInput, Path: path, Err: err}
	}
	if count == 0 {
		return 0, nil
	}

	if err := writeFile("commits.write", path, []byte(out), mode); err != nil {
		return 0, err
	}
	return count, nil
}

// SedSubstituter runs `sed -i -E 's#find#replace#g' file`.
type SedSubstituter struct {
	Command string   // Default: "sed"
	InPlace []string // Default: ["-i", ""] on BSD sed, ["-i"] otherwise
	Stdout  io.Writer
	Stderr  io.Writer
}

// Substitute implements Substituter. sed does not report how many lines it changed.
func (s SedSubstituter) Substitute(path string, sub Substitution) (int, error) {
	args, err := s.Args(path, sub)
	if err != nil {
		return 0, &OpError{Op: "commits.sed", Kind: KindInvalidInput, Path: path, Err: err}
	}

	cmd := s.Command
	if cmd == "" {
		cmd = "sed"
	}

	ran, err := sh.Exec(nil, s.Stdout, s.Stderr, cmd, args...)
	if !ran {
		return 0, &OpError{Op: "commits.sed", Kind: KindNotFound, Path: path, Err: err}
	}
	if err != nil {
		return 0, &OpError{Op: "commits.sed", Kind: KindExecution, Path: path, Err: err}
	}
	return -1, nil
}

// Args builds the sed argument list for one file.
func (s SedSubstituter) Args(path string, sub Substitution) ([]string, error) {
	// sh.Exec expands $VAR references in arguments
	if strings.Contains(sub.Find, "$") || strings.Contains(sub.Replace, "$") || strings.Contains(path, "$") {
		return nil, fmt.Errorf("sed engine cannot pass %q through the shell runner", "$")
	}

	inPlace := s.InPlace
	if inPlace == nil {
		inPlace = defaultInPlaceArgs(runtime.GOOS)
	}

	args := make([]string, 0, len(inPlace)+3)
	args = append(args, inPlace...)
	args = append(args, "-E", sedScript(sub), path)
	return args, nil
}

// defaultInPlaceArgs returns the in-place flag for the platform's sed.
// BSD sed requires an explicit (empty) backup suffix.
func defaultInPlaceArgs(goos string) []string {
	switch goos {
	case "darwin", "freebsd", "netbsd", "openbsd", "dragonfly":
		return []string{"-i", ""}
	default:
		return []string{"-i"}
	}
}

// sedScript renders s#find#replace#g with the delimiter and replacement metacharacters escaped.
func sedScript(sub Substitution) string {
	find := strings.ReplaceAll(sub.Find, "#", `\#`)
	replace := strings.NewReplacer(`\`, `\\`, "&", `\&`, "#", `\#`).Replace(sub.Replace)
	return "s#" + find + "#" + replace + "#g"
}
