package cmd

import (
	"github.com/spf13/cobra"

	"client-ledger/shared"
)

// snapshotCmd represents the snapshot command group
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Store balances to disk and inspect stored snapshots",
}

// storeCmd represents the store command
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Write every balance to a new snapshot file and zero the ledger",
	Long: `Writes one "<id> <balance>" line per account to <data-dir>/DDMMYYYY_N.DAT,
where N counts the snapshots already stored today. Balances are zeroed only
after the file has been written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := ledgerService.StoreBalances(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "Stored %d balance(s), total %s, to %s\n",
			len(result.Records), shared.FormatAmount(shared.Sum(result.Records)), result.Path)
		return nil
	},
}

// snapshotListCmd represents the snapshot list command
var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshot files, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := ledgerService.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		if len(files) == 0 {
			printf(cmd, "No snapshots in %s.\n", cfg.DataDir)
			return nil
		}
		for _, f := range files {
			printf(cmd, "%s  %s  #%d\n", f.Name, f.Day.Format("2006-01-02"), f.Sequence)
		}
		return nil
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the balances stored in one snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := ledgerService.ReadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printf(cmd, "Snapshot %s (%s, #%d)\n", snap.Name, snap.Day.Format("2006-01-02"), snap.Sequence)
		for _, r := range snap.Records {
			printf(cmd, "  %s %s\n", r.AccountID, shared.FormatAmount(r.Amount))
		}
		printf(cmd, "Total: %s\n", shared.FormatAmount(snap.Total()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(storeCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(showCmd)
}
