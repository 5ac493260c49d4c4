package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slrctl",
		Short: "Operate a human-in-the-loop systematic literature review pipeline",
		Long: `slrctl drives a systematic literature review through its pipeline stages:
project setup, problem framing, research questions, search concept expansion,
database query planning, query execution, screening criteria, and strategy
export. Every stage drafts an artifact for human review; approving an
artifact unblocks the stages downstream of it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to slrctl.toml (default: $SLR_CONFIG, ./slrctl.toml, or ~/.config/slrctl/slrctl.toml)")

	root.AddCommand(newStartCmd())
	root.AddCommand(newRunStageCmd())
	root.AddCommand(newApproveCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newListStagesCmd())

	return root
}
