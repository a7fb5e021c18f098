package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pgmeta/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "pgmeta",
	Short:   "Bootstrap a PostgreSQL schema from declared table metadata",
	Long: `pgmeta validates a postgres connection string, connects an engine,
and creates the declared schema with create-if-not-exists DDL.

Table declarations are read from a YAML schema file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if cf, _ := cmd.Flags().GetString("config"); cf != "" {
			files = append(files, cf)
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-url", "", "postgres connection string (env: PGMETA_DATABASE_URL)")
	rootCmd.PersistentFlags().String("schema-file", "", "YAML schema declarations file (env: PGMETA_SCHEMA_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: PGMETA_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
