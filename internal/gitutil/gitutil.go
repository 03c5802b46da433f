// Package gitutil provides best-effort git metadata lookups for the
// export pipeline.
package gitutil

import (
	"fmt"

	git "github.com/go-git/go-git/v5"

	"github.com/tildaslashalef/redline/internal/loggy"
)

// Service resolves git metadata for a workspace.
type Service struct {
	logger *loggy.Logger
}

// NewService creates a new git service
func NewService(logger *loggy.Logger) *Service {
	return &Service{logger: logger}
}

// HeadSHA returns the commit hash at HEAD of the repository rooted at
// path. Used to fill a row's missing sha field; callers treat errors as
// "no sha available", never as fatal.
func (s *Service) HeadSHA(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
