// Package vcs reads revision information from module checkouts.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ShortLength is the number of hex digits used in image tags.
const ShortLength = 7

// ErrNoCommits is returned for a repository without a HEAD commit.
var ErrNoCommits = errors.New("repository has no commits")

// Revision identifies the checked-out commit of a module.
type Revision struct {
	Hash string
	// Branch is empty for a detached HEAD.
	Branch string
}

// Short returns the abbreviated hash.
func (r Revision) Short() string {
	if len(r.Hash) <= ShortLength {
		return r.Hash
	}
	return r.Hash[:ShortLength]
}

// Head returns the revision checked out at dir, which may be any directory
// inside the work tree.
func Head(dir string) (Revision, error) {
	repository, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Revision{}, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	ref, err := repository.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, ErrNoCommits
		}
		return Revision{}, fmt.Errorf("resolve HEAD of %s: %w", dir, err)
	}
	rev := Revision{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}
	return rev, nil
}
