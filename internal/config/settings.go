package config

import (
	"os"
)

// Environment variables read by Resolve
const (
	EnvGitToken = "REPO_UPLOADER_GIT_TOKEN"
	EnvLogFile  = "REPO_UPLOADER_LOG_FILE"
)

// Defaults applied when nothing else sets a value
const (
	DefaultBranch = "main"
	DefaultRemote = "origin"
)

// Overrides holds values given on the command line. Empty strings are unset.
type Overrides struct {
	Branch    string
	Remote    string
	RemoteURL string
	Token     string
	LogFile   string
	Exclude   []string
}

// Settings are the fully resolved values for one upload
type Settings struct {
	Branch    string
	Remote    string
	RemoteURL string
	Token     string
	LogFile   string
	Exclude   []string
}

// Resolve merges defaults, the repository file at repoRoot, the environment
// and overrides. getenv defaults to os.Getenv when nil.
func Resolve(repoRoot string, overrides Overrides, getenv func(string) string) (Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	settings := Settings{
		Branch: DefaultBranch,
		Remote: DefaultRemote,
	}

	if repoRoot != "" {
		repoConfig, err := GetRepoConfig(repoRoot)
		if err != nil {
			return Settings{}, err
		}
		if repoConfig.Branch != nil && *repoConfig.Branch != "" {
			settings.Branch = *repoConfig.Branch
		}
		if repoConfig.Remote != nil && *repoConfig.Remote != "" {
			settings.Remote = *repoConfig.Remote
		}
		if repoConfig.RemoteURL != nil {
			settings.RemoteURL = *repoConfig.RemoteURL
		}
		settings.Exclude = append(settings.Exclude, repoConfig.Exclude...)
	}

	if token := getenv(EnvGitToken); token != "" {
		settings.Token = token
	}
	if logFile := getenv(EnvLogFile); logFile != "" {
		settings.LogFile = logFile
	}

	if overrides.Branch != "" {
		settings.Branch = overrides.Branch
	}
	if overrides.Remote != "" {
		settings.Remote = overrides.Remote
	}
	if overrides.RemoteURL != "" {
		settings.RemoteURL = overrides.RemoteURL
	}
	if overrides.Token != "" {
		settings.Token = overrides.Token
	}
	if overrides.LogFile != "" {
		settings.LogFile = overrides.LogFile
	}
	settings.Exclude = append(settings.Exclude, overrides.Exclude...)

	return settings, nil
}
