package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pgmeta"
	"github.com/sagarc03/pgmeta/config"
	"github.com/sagarc03/pgmeta/schema"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the declared schema in the target database",
	Long: `Connect to the configured database and create every table declared
in the schema file with CREATE TABLE IF NOT EXISTS. Existing tables are
left untouched; this is not a migration tool.

After creation the schema is verified: every declared table must exist
and carry every declared column.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	catalog := schema.NewCatalog()
	if cfg.Schema.File != "" {
		tables, err := schema.LoadFile(cfg.Schema.File)
		if err != nil {
			return err
		}
		if err := catalog.DeclareAll(tables); err != nil {
			return err
		}
		slog.Info("loaded schema declarations", "file", cfg.Schema.File, "tables", catalog.Len())
	}

	reg, err := pgmeta.New().Init(ctx, cfg.Database.URL, catalog)
	if err != nil {
		return fmt.Errorf("initialize registry: %w", err)
	}

	engine, err := reg.Engine()
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := catalog.Verify(ctx, engine); err != nil {
		return fmt.Errorf("verify schema: %w", err)
	}

	info := reg.ConnInfo()
	slog.Info("schema initialized",
		"database", info.Database,
		"user", info.User,
		"port", info.Port,
		"tables", catalog.Len())

	return nil
}
