package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/binderlca/internal/logging"
)

// ErrNoProject is returned by FindProjectRoot when no ancestor holds a
// .binderlca directory.
var ErrNoProject = errors.New("no binderlca project found")

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// FindProjectRoot walks up from dir and returns the first directory that
// contains a .binderlca directory. The global config directory never counts,
// so a home directory is not mistaken for a project.
func FindProjectRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	globalDir, _ := GetConfigDir()

	current := absDir
	for {
		candidate := filepath.Join(current, configDirName)
		if candidate != globalDir {
			if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoProject
		}
		current = parent
	}
}

// ResolveProjectDir determines the project-local .binderlca directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. BINDERLCA_PROJECT_DIR env var
//  3. FindProjectRoot(startDir) walk-up
//
// Returns the path to $PROJECT/.binderlca/ or empty string if no project found.
// Does NOT create the directory. Returned path is always absolute (or empty).
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}

	projectRoot, err := FindProjectRoot(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}

	return toAbsProjectDir(ctx, projectRoot)
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. Environment overrides are
// applied last. If projectDir is empty, behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := newFromFile()
	cfg.applyEnv()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error; use global values.
		return cfg
	}

	merged := newFromFile()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}

	merged.applyEnv()
	return merged
}

// toAbsProjectDir converts dir to an absolute path and appends ".binderlca".
// A path already ending in ".binderlca" is returned as-is.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}

	return filepath.Join(abs, configDirName)
}
