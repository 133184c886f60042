package cli

import (
	"github.com/spf13/cobra"

	"github.com/playcircuit/gateway/internal/model"
)

func newLedgerCmd() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the economic ledger",
	}

	var uid string
	var projectID string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger entries for a user's project, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := cfg.ledgerService()
			if err != nil {
				return err
			}
			defer done()

			entries, err := svc.List(cmd.Context(), model.UserID(uid), model.ProjectID(projectID))
			if err != nil {
				return err
			}
			return printJSON(entries)
		},
	}
	listCmd.Flags().StringVar(&uid, "uid", "", "User id")
	listCmd.Flags().StringVar(&projectID, "project", "", "Project id")
	_ = listCmd.MarkFlagRequired("uid")
	_ = listCmd.MarkFlagRequired("project")

	ledgerCmd.AddCommand(listCmd)
	return ledgerCmd
}
