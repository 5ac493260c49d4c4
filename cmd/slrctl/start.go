package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <raw idea>",
		Short: "Start a new project from a raw research idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, logger, err := buildController()
			if err != nil {
				return err
			}

			rawIdea := strings.Join(args, " ")
			projectID, result, err := controller.StartProject(context.Background(), rawIdea)
			if err != nil {
				return err
			}
			logger.Info("project started", "project_id", projectID, "stage", result.StageName)

			return printJSON(cmd, map[string]any{
				"project_id": projectID,
				"result":     result,
			})
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
