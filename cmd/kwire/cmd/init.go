/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/kwire/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default kwire configuration",
	Long: `Write a default configuration file.

Examples:
  kwire init
  kwire init --config ./kwire.yaml --corpus-dir ./samples`,
	// init must work before any config file exists
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		corpusDir, _ := cmd.Flags().GetString("corpus-dir")
		force, _ := cmd.Flags().GetBool("force")

		if err := writeDefaultConfig(configPath, corpusDir, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

// writeDefaultConfig saves a default config at configPath
func writeDefaultConfig(configPath, corpusDir string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s, use --force to overwrite", configPath)
	}
	cfg := config.DefaultConfig()
	if corpusDir != "" {
		cfg.CorpusDir = corpusDir
	}
	return config.SaveConfig(cfg, configPath)
}
