package cmd

import (
	"github.com/spf13/cobra"

	"client-ledger/app"
	"client-ledger/shared"
)

var queryAccountID string

// queryCmd represents the query command group
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query account information",
}

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Get an account's balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := ledgerService.GetAccount(cmd.Context(), app.GetAccountQuery{AccountID: queryAccountID})
		if err != nil {
			return err
		}

		printf(cmd, "Account '%s'\n", account.ID)
		printf(cmd, "  Name:     %s\n", account.Name)
		printf(cmd, "  Born:     %s\n", account.BirthDate)
		printf(cmd, "  Document: %s\n", account.DocumentNumber)
		printf(cmd, "  Country:  %s\n", account.Country)
		printf(cmd, "  Balance:  %s\n", shared.FormatAmount(account.Balance))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().StringVar(&queryAccountID, "id", "", "Account ID to query (required)")
	_ = balanceCmd.MarkFlagRequired("id")
}
