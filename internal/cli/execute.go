package cli

import (
	"errors"

	"github.com/spf13/pflag"
)

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		exitErr := NormalizeError(err)
		_ = writeCLIError(cmd.ErrOrStderr(), exitErr)
		return exitErr.Code
	}
	return 0
}
