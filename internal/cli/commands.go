package cli

import (
	"fmt"
	"os"

	"github.com/osvaldoandrade/treesync/internal/app/actions"
	pinapp "github.com/osvaldoandrade/treesync/internal/app/pin"
	statusapp "github.com/osvaldoandrade/treesync/internal/app/status"
	syncapp "github.com/osvaldoandrade/treesync/internal/app/sync"
	"github.com/osvaldoandrade/treesync/internal/domain"
	"github.com/osvaldoandrade/treesync/internal/infra/gitcli"
	"github.com/osvaldoandrade/treesync/internal/infra/ident"
	"github.com/osvaldoandrade/treesync/internal/infra/manifestxml"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <file>",
		Short: "Write a default manifest template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manifestxml.Generate(args[0]); err != nil {
				return err
			}
			if opts.Quiet {
				return nil
			}
			ui := newRenderer(cmd.OutOrStdout())
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.ok("Created"), args[0])
			return err
		},
	}
}

func newSyncCmd(opts *RootOptions) *cobra.Command {
	var https bool
	var light bool
	var force bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync every project in the manifest to its revision",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := domain.ModeSSH
			if https {
				mode = domain.ModeHTTPS
			}

			var surface syncapp.Surface
			if !opts.Quiet && isTerminal(cmd.ErrOrStderr()) {
				surface = newSurface(cmd.ErrOrStderr())
			}

			service := syncapp.NewService(
				gitcli.NewProvider(),
				actions.NewExecutor(),
				surface,
				ident.NewULIDGenerator(),
			)
			err := service.Sync(cmd.Context(), opts.Manifest, syncapp.Options{
				Mode:  mode,
				Light: light,
				Quiet: opts.Quiet,
				Force: force,
			})
			if err != nil {
				return err
			}
			if opts.Quiet {
				return nil
			}
			ui := newRenderer(cmd.OutOrStdout())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d project(s)\n", ui.ok("Synced"), len(opts.Manifest.Projects))
			return err
		},
	}
	cmd.Flags().BoolVar(&https, "https", false, "Clone over https instead of ssh")
	cmd.Flags().BoolVar(&light, "light", false, "Shallow fetch (depth 1) of the named revisions")
	cmd.Flags().BoolVar(&force, "force", false, "Force checkout, discarding local modifications")
	return cmd
}

func newPinCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <file>",
		Short: "Write a manifest with every revision pinned to its commit id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := pinapp.NewService(gitcli.NewProvider(), manifestxml.NewParser())
			pinned, err := service.Pin(cmd.Context(), opts.Manifest)
			if err != nil {
				return err
			}
			if err := manifestxml.Save(args[0], pinned.Raw); err != nil {
				return err
			}
			if opts.Quiet {
				return nil
			}
			ui := newRenderer(cmd.OutOrStdout())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.ok("Pinned"), args[0])
			return err
		},
	}
}

func newListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List project paths relative to the working directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workdir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			service := statusapp.NewService(gitcli.NewProvider())
			for _, path := range service.List(opts.Manifest, workdir) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newStatusCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which projects carry local modifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workdir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			service := statusapp.NewService(gitcli.NewProvider())
			ui := newRenderer(cmd.OutOrStdout())
			for _, line := range service.Report(cmd.Context(), opts.Manifest, workdir) {
				if ui.color {
					line = colorStatusLine(ui, line)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
