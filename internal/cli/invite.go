package cli

import (
	"github.com/spf13/cobra"
)

func newInviteCmd() *cobra.Command {
	inviteCmd := &cobra.Command{
		Use:   "invite",
		Short: "Manage invite codes",
	}

	var plan string
	var code string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new invite code",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := cfg.inviteService()
			if err != nil {
				return err
			}
			defer done()

			created, err := svc.Create(cmd.Context(), code, plan)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}
	createCmd.Flags().StringVar(&plan, "plan", "free", "Plan granted on redemption")
	createCmd.Flags().StringVar(&code, "code", "", "Explicit code (generated when empty)")

	showCmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := cfg.inviteService()
			if err != nil {
				return err
			}
			defer done()

			found, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(found)
		},
	}

	inviteCmd.AddCommand(createCmd)
	inviteCmd.AddCommand(showCmd)
	return inviteCmd
}
