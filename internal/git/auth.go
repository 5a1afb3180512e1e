package git

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// TemporaryRemoteName is the remote registered for an authenticated push
const TemporaryRemoteName = "repo-uploader-tmp"

const secureScheme = "https://"

// AuthenticatedURL embeds token in remoteURL. https URLs carry it as the
// userinfo right after the scheme; any other URL gets it prefixed.
func AuthenticatedURL(remoteURL, token string) string {
	if token == "" {
		return remoteURL
	}
	if len(remoteURL) >= len(secureScheme) && strings.EqualFold(remoteURL[:len(secureScheme)], secureScheme) {
		if u, err := url.Parse(remoteURL); err == nil && u.Host != "" {
			u.User = url.User(token)
			return u.String()
		}
		return remoteURL[:len(secureScheme)] + token + "@" + remoteURL[len(secureScheme):]
	}
	return token + "@" + remoteURL
}

// AddTokenSecrets registers token for redaction when it is passed as an argument
func AddTokenSecrets(runner Runner, token string) {
	runner.AddSecret(token)
}

// RemoteState tracks a temporary remote through one push
type RemoteState int

const (
	// RemoteStateNone means nothing has been registered
	RemoteStateNone RemoteState = iota
	// RemoteStateRegistered means the remote exists in the repository config
	RemoteStateRegistered
	// RemoteStatePushAttempted means a push through the remote has run
	RemoteStatePushAttempted
	// RemoteStateRemoved means the remote has been deleted again
	RemoteStateRemoved
)

func (s RemoteState) String() string {
	switch s {
	case RemoteStateNone:
		return "NoRemote"
	case RemoteStateRegistered:
		return "RemoteRegistered"
	case RemoteStatePushAttempted:
		return "PushAttempted"
	case RemoteStateRemoved:
		return "RemoteRemoved"
	default:
		return fmt.Sprintf("RemoteState(%d)", int(s))
	}
}

// TemporaryRemote is a remote that exists only for the duration of one push.
// Callers must defer Release as soon as RegisterTemporaryRemote succeeds.
type TemporaryRemote struct {
	Name   string
	runner Runner
	state  RemoteState
}

// RegisterTemporaryRemote registers remoteURL under name, replacing any
// existing remote of that name. The URL is registered as a secret on runner.
func RegisterTemporaryRemote(ctx context.Context, runner Runner, name, remoteURL string) (*TemporaryRemote, error) {
	runner.AddSecret(remoteURL)

	exists, err := runner.HasRemote(ctx, name)
	switch {
	case err != nil:
		// Config unreadable through go-git; let git decide whether there is anything to remove
		_ = runner.RemoveRemote(ctx, name)
	case exists:
		if err := runner.RemoveRemote(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to replace existing remote %s: %w", name, err)
		}
	}

	if err := runner.AddRemote(ctx, name, remoteURL); err != nil {
		return nil, err
	}

	return &TemporaryRemote{
		Name:   name,
		runner: runner,
		state:  RemoteStateRegistered,
	}, nil
}

// State returns the current lifecycle state
func (t *TemporaryRemote) State() RemoteState {
	return t.state
}

// Push pushes branchName through the temporary remote
func (t *TemporaryRemote) Push(ctx context.Context, branchName string) error {
	if t.state != RemoteStateRegistered {
		return fmt.Errorf("temporary remote %s is %s", t.Name, t.state)
	}
	t.state = RemoteStatePushAttempted
	return t.runner.Push(ctx, t.Name, branchName)
}

// Release removes the temporary remote. It is safe to call more than once.
func (t *TemporaryRemote) Release(ctx context.Context) error {
	if t.state == RemoteStateNone || t.state == RemoteStateRemoved {
		return nil
	}
	if err := t.runner.RemoveRemote(ctx, t.Name); err != nil {
		return err
	}
	t.state = RemoteStateRemoved
	return nil
}
