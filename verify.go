package docpatch

import (
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// VerifyCommits checks that every entry's commit id resolves in the git repository at repoPath.
// All unknown ids are reported in a single error.
func VerifyCommits(repoPath string, entries []CommitEntry) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return &OpError{Op: "commits.verify", Kind: KindNotFound, Path: repoPath, Err: err}
	}

	var missing []string
	for _, e := range entries {
		hash, err := repo.ResolveRevision(plumbing.Revision(e.CommitID))
		if err != nil {
			missing = append(missing, fmt.Sprintf("%s (line %d)", e.CommitID, e.Line))
			continue
		}
		if _, err := repo.CommitObject(*hash); err != nil {
			missing = append(missing, fmt.Sprintf("%s (line %d)", e.CommitID, e.Line))
		}
	}

	if len(missing) > 0 {
		return &OpError{
			Op:   "commits.verify",
			Kind: KindNotFound,
			Path: repoPath,
			Err:  fmt.Errorf("unknown commits: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
