package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"client-ledger/app"
	"client-ledger/domain"
	"client-ledger/shared"
)

// Variables to hold flag values for transaction commands
var (
	txAccountID string
	txAmountStr string
)

// transactionCmd represents the transaction command group
var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Credit or debit a client account",
}

// creditCmd represents the credit command
var creditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Add funds to an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction(cmd, ledgerService.Credit)
	},
}

// debitCmd represents the debit command
var debitCmd = &cobra.Command{
	Use:   "debit",
	Short: "Take funds from an account",
	Long:  `Subtracts the amount from the account, or fails without any change when the balance is lower than the amount.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction(cmd, ledgerService.Debit)
	},
}

func runTransaction(cmd *cobra.Command, apply func(context.Context, app.TransactionCommand) (app.TransactionResult, error)) error {
	amount, err := domain.ParseAmount(txAmountStr)
	if err != nil {
		return err
	}

	result, err := apply(cmd.Context(), app.TransactionCommand{AccountID: txAccountID, Amount: amount})
	if err != nil {
		return err
	}
	printf(cmd, "%s of %s applied to account '%s'. New balance: %s\n",
		result.Kind, shared.FormatAmount(amount), result.AccountID, shared.FormatAmount(result.NewBalance))
	return nil
}

func init() {
	rootCmd.AddCommand(transactionCmd)
	transactionCmd.AddCommand(creditCmd)
	transactionCmd.AddCommand(debitCmd)

	for _, c := range []*cobra.Command{creditCmd, debitCmd} {
		c.Flags().StringVar(&txAccountID, "id", "", "Account ID (required)")
		c.Flags().StringVar(&txAmountStr, "amount", "", "Amount, e.g. 100.00 (required)")
		_ = c.MarkFlagRequired("id")
		_ = c.MarkFlagRequired("amount")
	}
}
