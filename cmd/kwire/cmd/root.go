/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/kwire/pkg/config"
	"github.com/ssargent/kwire/pkg/di"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kwire",
	Short: "kwire - protocol wire codec toolkit",
	Long: `kwire encodes and decodes the length-prefixed primitives of a
request/response wire protocol, and keeps a corpus of captured frames for
regression testing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return container.Configure(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("corpus-dir", "", "Corpus directory override")
	rootCmd.PersistentFlags().Bool("compact", true, "Use compact (varint) length encoding")
}

// resolveConfig loads the config file if present and applies flag overrides.
// A missing file at the default path is not an error.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if dir, _ := cmd.Flags().GetString("corpus-dir"); dir != "" {
		cfg.CorpusDir = dir
	}
	if cmd.Flags().Changed("compact") {
		cfg.Codec.Compact, _ = cmd.Flags().GetBool("compact")
	}
	return cfg, nil
}

// compactMode reports the encoding selected by config and flags
func compactMode() bool {
	return container.Config().Codec.Compact
}
