// Package gitinfo resolves the current commit hash for snapshot stamping.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// GitInfo implements domain.CommitResolver using go-git.
type GitInfo struct{}

func New() *GitInfo { return &GitInfo{} }

// CommitHash returns the short hash of HEAD, or an error when root is not
// inside a git repository.
func (g *GitInfo) CommitHash(root string) (string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String()[:7], nil
}
