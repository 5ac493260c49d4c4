package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newRunStageCmd() *cobra.Command {
	var databases []string

	cmd := &cobra.Command{
		Use:   "run-stage <stage-name> <project-id>",
		Short: "Run a single pipeline stage for a project",
		Long: `Runs a stage after checking that every artifact it requires has been
approved (or approved_with_notes). Fails with no side effect otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, logger, err := buildController()
			if err != nil {
				return err
			}

			stageName, projectID := args[0], args[1]
			inputs := map[string]any{}
			if len(databases) > 0 {
				inputs["databases"] = databases
			}

			result, err := controller.RunStage(context.Background(), stageName, projectID, inputs)
			if err != nil {
				return err
			}
			if result.Failed() {
				logger.Warn("stage failed validation", "stage", stageName, "project_id", projectID, "errors", strings.Join(result.ValidationErrors, "; "))
			} else {
				logger.Info("stage completed", "stage", stageName, "project_id", projectID)
			}

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringSliceVar(&databases, "database", nil, "target database (repeatable; database-query-plan stage only)")

	return cmd
}
