package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X profin/internal/cli.Version=...".
var Version = "dev"

// NewRootCmd builds the profin command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "profin",
		Short: "Project a bank balance into the future",
		Long: `profin replays a timeline of recurring payments, one-time transactions,
loans and balance anchors day by day and reports the projected balance.

Timelines are described in TOML scenario files. Settings are read from the
environment (PROFIN_*), optionally through a .env file, and flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newProjectCmd())
	root.AddCommand(newMonthsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command tree until completion or an interrupt signal.
func Execute() error {
	LoadEnvFile()

	ctx, stop := SignalContext(context.Background())
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}
