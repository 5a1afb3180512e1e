// Package config resolves repo-uploader settings.
//
// Settings come from, in increasing priority:
//   - Built-in defaults (branch "main", remote "origin")
//   - The per-repository file .git/.repo_uploader_config
//   - Environment variables (REPO_UPLOADER_*)
//   - Command line flags
//
// Tokens are only ever taken from flags or the environment, never from disk.
package config
