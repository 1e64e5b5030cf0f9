package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHead(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = Head(dir)
	require.ErrorIs(t, err, ErrNoCommits)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "Dockerfile"), []byte("FROM scratch\n"), 0o600))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("src/Dockerfile")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "msph", Email: "msph@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	rev, err := Head(filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Equal(t, hash.String(), rev.Hash)
	assert.Equal(t, hash.String()[:ShortLength], rev.Short())
	assert.NotEmpty(t, rev.Branch)
}

func TestHead_NotARepository(t *testing.T) {
	_, err := Head(t.TempDir())
	require.Error(t, err)
}

func TestRevisionShort(t *testing.T) {
	assert.Equal(t, "abc", Revision{Hash: "abc"}.Short())
}
