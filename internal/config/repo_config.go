package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// repoConfigFile is the defaults file inside the target repository's git dir
const repoConfigFile = ".repo_uploader_config"

// RepoConfig represents the per-repository defaults
type RepoConfig struct {
	Branch    *string  `json:"branch,omitempty"`
	Remote    *string  `json:"remote,omitempty"`
	RemoteURL *string  `json:"remoteUrl,omitempty"`
	Exclude   []string `json:"exclude,omitempty"`
}

// RepoConfigPath returns the location of the defaults file for repoRoot
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", repoConfigFile)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(RepoConfigPath(repoRoot))
	if err != nil {
		// Config doesn't exist (or .git is a file) - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SaveRepoConfig writes the repository configuration
func SaveRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(RepoConfigPath(repoRoot), configJSON, 0600)
}
