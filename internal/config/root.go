package config

import (
	"os"
	"path/filepath"

	"github.com/example/mail-composer/internal/apperror"
)

// FindRoot walks up from startDir and returns the first ancestor containing
// config/app.json.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", apperror.New(apperror.InternalServerError,
			"failed to resolve the starting directory").
			WithCause(err)
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", apperror.New(apperror.NotFound,
				"workspace root not found").
				WithHint("run inside a workspace containing config/app.json, or pass -C")
		}
		dir = parent
	}
}

// ResolveRoot picks the workspace root: an explicit directory wins, then the
// MAILCOMPOSER_ROOT environment variable, then upward discovery from the
// working directory.
func ResolveRoot(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("MAILCOMPOSER_ROOT"); env != "" {
		return env, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", apperror.New(apperror.InternalServerError,
			"failed to determine the working directory").
			WithCause(err)
	}
	return FindRoot(wd)
}
