// Package runtime provides the execution context for repo-uploader actions.
//
// It encapsulates shared dependencies needed by actions, such as the
// logger, the git runner and the resolved settings.
package runtime
