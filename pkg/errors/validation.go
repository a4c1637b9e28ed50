package errors

import (
	"errors"
	"io/fs"
	"os"
	"unicode"
)

const maxPathLength = 4096

// ValidatePath validates a file path given on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateInputPath validates path with [ValidatePath] and checks that it
// names an existing regular file.
func ValidateInputPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(ErrCodeFileNotFound, err, "input file %s does not exist", path)
	case err != nil:
		return Wrap(ErrCodeInvalidPath, err, "cannot access %s", path)
	case info.IsDir():
		return New(ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}
