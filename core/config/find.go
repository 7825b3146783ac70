package config

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrInvalidPath  = errors.New("invalid path provided")
	ErrFileNotFound = errors.New("file not found")
)

// FindUp searches startDir and its ancestors for filename and returns the
// first match.
func FindUp(startDir, filename string) (string, error) {
	if startDir == "" || filename == "" {
		return "", ErrInvalidPath
	}

	currentDir, err := resolveStartDir(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(currentDir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrFileNotFound
		}
		currentDir = parentDir
	}
}

func resolveStartDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", ErrInvalidPath
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return "", ErrInvalidPath
	}
	if !info.IsDir() {
		absDir = filepath.Dir(absDir)
	}
	return absDir, nil
}
