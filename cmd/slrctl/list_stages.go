package main

import (
	"github.com/spf13/cobra"

	"github.com/mbsoft31/slr-pipeline/internal/stage"
)

func newListStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-stages <project-id>",
		Short: "List stages whose required upstream artifacts are all approved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, _, err := buildController()
			if err != nil {
				return err
			}

			projectID := args[0]
			available, err := controller.ListAvailableStages(projectID)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"project_id":       projectID,
				"all_stages":       stage.Names(),
				"available_stages": available,
			})
		},
	}
}
