package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/pgmeta"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively build the connection string and write the config file",
	Long: `Prompt for the database host, port, database name, and credentials,
assemble a postgres connection string, and write it to the config file.

The target file is taken from --config (default: ./config.yaml).`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

// configFile mirrors the YAML layout the config package reads.
type configFile struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Schema struct {
		File string `yaml:"file,omitempty"`
	} `yaml:"schema"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runConfigure(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = "config.yaml"
	}

	hostPrompt := promptui.Prompt{
		Label:   "Host",
		Default: "localhost",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("host is required")
			}
			return nil
		},
	}
	host, err := hostPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: "5432",
		Validate: func(input string) error {
			p, convErr := strconv.Atoi(input)
			if convErr != nil || p < 1 || p > 65535 {
				return errors.New("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	port, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	dbPrompt := promptui.Prompt{
		Label: "Database name",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("database name is required")
			}
			return nil
		},
	}
	dbName, err := dbPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	userPrompt := promptui.Prompt{
		Label: "User",
	}
	user, err := userPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	password := ""
	if user != "" {
		passwordPrompt := promptui.Prompt{
			Label: "Password",
			Mask:  '*',
		}
		password, err = passwordPrompt.Run()
		if err != nil {
			return handlePromptError(err)
		}
	}

	connURL := url.URL{
		Scheme: "postgres",
		Host:   host + ":" + port,
		Path:   "/" + dbName,
	}
	if user != "" {
		if password != "" {
			connURL.User = url.UserPassword(user, password)
		} else {
			connURL.User = url.User(user)
		}
	}
	connString := connURL.String()

	if _, err := pgmeta.ParseConnString(connString); err != nil {
		return err
	}

	// Schema file is optional
	schemaPrompt := promptui.Prompt{
		Label: "Schema file (optional)",
	}
	schemaFile, err := schemaPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	var cf configFile
	cf.Database.URL = connString
	cf.Schema.File = schemaFile
	cf.Log.Level = "info"

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", configPath)
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
