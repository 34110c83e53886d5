package cmd

import (
	"github.com/spf13/cobra"

	"client-ledger/app"
	"client-ledger/domain"
	"client-ledger/shared"
)

var profile domain.Profile

// accountCmd represents the account command group
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage client accounts",
	Long:  `Provides commands to open client accounts and list the ones in the ledger.`,
}

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new client account",
	Long: `Opens a new account with a zero balance. The document number identifies
the client: a second account with the same document is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.Validate(); err != nil {
			return err
		}

		id, err := ledgerService.CreateAccount(cmd.Context(), app.CreateAccountCommand{Profile: profile})
		if err != nil {
			return err
		}
		printf(cmd, "Account '%s' created for document %s.\n", id, profile.DocumentNumber)
		return nil
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every account with its balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts := ledgerService.ListAccounts(cmd.Context())
		if len(accounts) == 0 {
			printf(cmd, "No accounts.\n")
			return nil
		}
		for _, acc := range accounts {
			printf(cmd, "%s  %-16s %-12s %s\n", acc.ID, acc.DocumentNumber, shared.FormatAmount(acc.Balance), acc.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(createCmd)
	accountCmd.AddCommand(listCmd)

	createCmd.Flags().StringVar(&profile.Name, "name", "", "Client name")
	createCmd.Flags().StringVar(&profile.BirthDate, "birth-date", "", "Client birth date")
	createCmd.Flags().StringVar(&profile.DocumentNumber, "document", "", "Client document number (required, unique)")
	createCmd.Flags().StringVar(&profile.Country, "country", "", "Client country")
	_ = createCmd.MarkFlagRequired("document")
}
