package cli

import (
	"os"
	"strings"

	"github.com/osvaldoandrade/treesync/internal/domain"
	"github.com/osvaldoandrade/treesync/internal/infra/gitcli"
	"github.com/osvaldoandrade/treesync/internal/infra/manifestxml"
	"github.com/osvaldoandrade/treesync/internal/platform"
	"github.com/spf13/cobra"
)

type RootOptions struct {
	ManifestPath string
	Quiet        bool
	LogLevel     string
	LogFormat    string

	// Loaded by the persistent pre-run for every command except generate.
	Manifest *domain.Manifest
}

func newRootCmd() *cobra.Command {
	opts := &RootOptions{
		ManifestPath: envDefault("TREESYNC_MANIFEST", "manifest.xml"),
		LogLevel:     envDefault("TREESYNC_LOG_LEVEL", "info"),
		LogFormat:    envDefault("TREESYNC_LOG_FORMAT", "text"),
	}
	cmd := &cobra.Command{
		Use:           "treesync",
		Short:         "Synchronize a multi-repository workspace from an XML manifest",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Name() == "generate" {
				return nil
			}
			if err := gitcli.NewProvider().Available(); err != nil {
				return err
			}
			manifest, err := manifestxml.Load(opts.ManifestPath)
			if err != nil {
				return err
			}
			opts.Manifest = manifest
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ManifestPath, "input", "i", opts.ManifestPath, "Path to the manifest file")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress progress output (errors are still reported)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newSyncCmd(opts),
		newPinCmd(opts),
		newListCmd(opts),
		newStatusCmd(opts),
	)

	return cmd
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
