// Package actions provides the high-level upload sequence behind the CLI.
//
// UploadAction copies the source tree into the target working copy, stages
// and commits it, and hands off to PushAction when a push is requested.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the git Runner and Splog
//   - Options structs are built once by the CLI and never mutated
//   - Only copy and push failures are returned; add/commit failures are logged
package actions
