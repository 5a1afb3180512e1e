package actions

import (
	"strings"

	uploaderrors "repouploader.dev/repouploader/internal/errors"
)

// validatePushOptions rejects values git would parse as options once they
// land on the push or remote command line
func validatePushOptions(opts PushOptions) error {
	values := []struct {
		flag  string
		value string
	}{
		{"--branch", opts.Branch},
		{"--remote", opts.Remote},
		{"--remote-url", opts.RemoteURL},
		{"--git-token", opts.Token},
	}
	for _, v := range values {
		if strings.HasPrefix(v.value, "-") {
			return uploaderrors.NewArgumentError("%s must not start with '-'", v.flag)
		}
	}
	return nil
}
