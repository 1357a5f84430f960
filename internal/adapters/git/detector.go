// Package git records which branch and commit a cycle was worked on,
// using go-git so no git binary is required.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// ErrNotRepository is returned when no repository contains the directory.
var ErrNotRepository = errors.New("not inside a git repository")

// shortHashLen matches git's default abbreviation.
const shortHashLen = 7

// Detector implements ports.GitDetector with go-git.
type Detector struct{}

// NewDetector creates a new git detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Ensure Detector implements ports.GitDetector.
var _ ports.GitDetector = (*Detector)(nil)

// Detect reads HEAD of the repository containing dir, walking up to the
// nearest .git. An empty dir means the process working directory.
func (d *Detector) Detect(ctx context.Context, dir string) (*ports.GitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	return &ports.GitInfo{
		Branch: branchName(head),
		Commit: shortHash(head.Hash().String()),
	}, nil
}

func branchName(head *plumbing.Reference) string {
	if !head.Name().IsBranch() {
		return "HEAD detached"
	}
	return head.Name().Short()
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
