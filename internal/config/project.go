package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// ProjectDirName is the directory holding project-local configuration.
const ProjectDirName = ".co2-monitor"

// ErrNoProject is returned by FindProjectDir when no project directory exists
// between the start directory and the filesystem root.
var ErrNoProject = errors.New("no project directory found")

var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config commands
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the project directory resolved at startup.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the project directory resolved at startup.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local configuration directory.
// It checks flagValue, then CO2MON_PROJECT_DIR, then walks up from startDir.
// It returns "" when there is none and never creates anything.
func ResolveProjectDir(flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(flagValue)
	}
	if envDir := os.Getenv("CO2MON_PROJECT_DIR"); envDir != "" {
		return toAbsProjectDir(envDir)
	}

	dir, err := FindProjectDir(startDir)
	if err != nil {
		return ""
	}
	return dir
}

// FindProjectDir walks up from startDir looking for a .co2-monitor directory.
func FindProjectDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	home, _ := os.UserHomeDir()
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		// The global config dir under $HOME is not a project.
		if dir != home {
			if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// LoadWithProjectDir loads the global config at path, then overlays
// projectDir/config.yaml section by section before env overrides and
// validation. A missing or broken overlay is logged and skipped.
func LoadWithProjectDir(ctx context.Context, path, projectDir string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil || projectDir == "" {
		return cfg, err
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		return cfg, nil
	}

	merged := *cfg
	if mergeErr := ShallowMergeYAML(&merged, overlayPath); mergeErr != nil {
		zerolog.Ctx(ctx).Warn().
			Str("component", "config").
			Err(mergeErr).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return cfg, nil
	}

	if err = merged.ApplyEnv(); err != nil {
		return nil, err
	}
	if err = merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func toAbsProjectDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
