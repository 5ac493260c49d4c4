package main

import (
	"github.com/spf13/cobra"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
)

func newApproveCmd() *cobra.Command {
	var notes string
	var withNotes bool
	var revise bool

	cmd := &cobra.Command{
		Use:   "approve <project-id> <artifact-type>",
		Short: "Approve a drafted artifact, unblocking its downstream stages",
		Long: `Transitions an artifact's status to approved (or, with --with-notes,
approved_with_notes, which gates downstream stages identically) and reports
the stages that become runnable as a result. Does not edit the artifact's
content; field-level edits happen out of band before approving. Pass
--revise instead to send it back to requires_revision.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, logger, err := buildController()
			if err != nil {
				return err
			}

			projectID, artifactType := args[0], artifact.Type(args[1])
			status := artifact.StatusApproved
			switch {
			case revise:
				status = artifact.StatusRequiresRevision
			case withNotes:
				status = artifact.StatusApprovedWithNotes
			}

			available, err := controller.ApproveArtifact(projectID, artifactType, status, notes)
			if err != nil {
				return err
			}
			logger.Info("artifact approved", "project_id", projectID, "artifact_type", artifactType, "status", status)

			return printJSON(cmd, map[string]any{
				"project_id":       projectID,
				"artifact_type":    artifactType,
				"status":           status,
				"available_stages": available,
			})
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "reviewer note recorded alongside the approval")
	cmd.Flags().BoolVar(&withNotes, "with-notes", false, "approve as approved_with_notes instead of approved")
	cmd.Flags().BoolVar(&revise, "revise", false, "send the artifact back to requires_revision instead of approving it")

	return cmd
}
