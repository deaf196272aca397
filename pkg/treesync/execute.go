package treesync

import "github.com/osvaldoandrade/treesync/internal/cli"

// Execute runs the treesync CLI entrypoint.
func Execute() int {
	return cli.Execute()
}
