package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pgmeta"
	"github.com/sagarc03/pgmeta/config"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Validate the connection string and ping the database",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	// Init with an empty catalog connects and pings without touching the
	// schema.
	reg, err := pgmeta.New().Init(ctx, cfg.Database.URL, nil)
	if err != nil {
		return err
	}

	engine, err := reg.Engine()
	if err != nil {
		return err
	}
	defer engine.Close()

	info := reg.ConnInfo()
	fmt.Printf("ok: %s (isolation: %s)\n", info.Redacted(), engine.Isolation())
	return nil
}
