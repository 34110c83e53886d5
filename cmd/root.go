package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"client-ledger/app"
	"client-ledger/config"
	"client-ledger/events"
	"client-ledger/events/kafka"
	"client-ledger/logging"
	"client-ledger/store"
)

var (
	// Built once per process; REPL commands share the same in-memory ledger.
	cfg           *config.Config
	logger        *zap.Logger
	ledgerService *app.LedgerService
	closers       []func() error

	envFile  string
	dataDir  string
	logLevel string
	logFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "An in-memory client ledger with daily balance snapshots",
	Long: `ledger keeps client accounts and balances in memory and can store every
balance to a dated snapshot file (DDMMYYYY_N.DAT), zeroing the ledger afterwards.

Run "ledger serve" for the HTTP API or "ledger repl" for an interactive session.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Optional .env file to load (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Snapshot directory (overrides LEDGER_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LEDGER_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Rotated log file (overrides LEDGER_LOG_FILE)")

	rootCmd.AddCommand(replCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	if ledgerService != nil {
		return nil
	}

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	loaded, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logFile != "" {
		loaded.Log.File = logFile
	}

	l, closeLog, err := logging.New(loaded)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NewLogPublisher(l.With(zap.String("component", "LedgerEvents")))
	if loaded.KafkaEnabled() {
		producer := kafka.NewPublisher(loaded.GetKafkaBrokers(), loaded.KafkaLedgerTopic, l.With(zap.String("component", "KafkaPublisher")))
		closers = append(closers, producer.Close)
		publisher = producer
		l.Info("Publishing ledger events to Kafka", zap.Strings("brokers", loaded.GetKafkaBrokers()), zap.String("topic", loaded.KafkaLedgerTopic))
	}

	// The log file closes last.
	closers = append(closers, closeLog)
	cfg = loaded
	logger = l
	ledgerService = app.NewLedgerService(
		store.NewInMemoryAccountStore(),
		store.NewFileSnapshotStore(loaded.DataDir),
		publisher,
		l.With(zap.String("component", "LedgerService")),
	)
	return nil
}

func teardown() {
	if logger != nil {
		_ = logger.Sync()
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}
	closers = nil
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
