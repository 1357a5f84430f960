package ports

import (
	"context"
)

// GitInfo holds git repository context information.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the directory (or the current one when empty) for git
	// context. It fails when the directory is not inside a repository.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)
}
