package main

import (
	"github.com/spf13/cobra"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <project-id>",
		Short: "Show every persisted artifact and its approval status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, _, err := buildController()
			if err != nil {
				return err
			}

			projectID := args[0]
			statuses, err := controller.Store().List(projectID)
			if err != nil {
				return err
			}

			out := make(map[artifact.Type]string, len(statuses))
			for t, s := range statuses {
				out[t] = string(s)
			}

			return printJSON(cmd, map[string]any{
				"project_id": projectID,
				"artifacts":  out,
			})
		},
	}
}
