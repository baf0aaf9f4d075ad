// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the extract-mcstructure CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/destruc7i0n/extract-mcstructure/internal/diag"
	"github.com/destruc7i0n/extract-mcstructure/internal/journal"
	"github.com/destruc7i0n/extract-mcstructure/internal/pipeline"
	"github.com/destruc7i0n/extract-mcstructure/internal/structid"
	"github.com/destruc7i0n/extract-mcstructure/internal/world"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

// classifier groups fatal errors for the final log line.
var classifier = new(diag.Classifier).
	Add(diag.CodeResolution, world.ErrWorldNotFound, world.ErrUnsupportedPlatform, world.ErrNoBehaviorPack).
	Add(diag.CodeInput, structid.ErrMalformedID, pipeline.ErrRecordExists).
	Add(diag.CodeStore, journal.ErrNoBackup, pipeline.ErrJournalDisabled)

// rootCmd is the base command for the extract-mcstructure CLI.
var rootCmd = &cobra.Command{
	Use:   "extract-mcstructure",
	Short: "Extract saved structures from Bedrock worlds as .mcstructure files",
	Long: `extract-mcstructure reads structure templates saved with a Structure Block
from a Bedrock world's database and writes each one to
structures/<namespace>/<folder>/<name>.mcstructure under the world (or its
behavior pack), optionally removing the record from the world.

Worlds are found by the name shown in game. Runs are recorded in a journal
that also keeps backups of deleted records for the restore command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = diag.NewLogger(os.Stderr, viper.GetBool("verbose"))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./extract-mcstructure.yaml or ~/.config/extract-mcstructure/extract-mcstructure.yaml)")
	rootCmd.PersistentFlags().String("worlds-dir", "", "minecraftWorlds directory (overrides platform detection)")
	rootCmd.PersistentFlags().String("platform", "", "platform layout: windows, windows-gdk, or android")
	rootCmd.PersistentFlags().String("journal", "", "journal database path (default: <user config dir>/extract-mcstructure/journal.db)")
	rootCmd.PersistentFlags().Bool("no-journal", false, "do not record runs or back up deleted records")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug diagnostics")

	bindFlag("worlds_dir", "worlds-dir")
	bindFlag("platform", "platform")
	bindFlag("journal.path", "journal")
	bindFlag("verbose", "verbose")
	viper.SetDefault("journal.enabled", true)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("extract-mcstructure")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "extract-mcstructure"))
		}
	}

	viper.SetEnvPrefix("MCSTRUCTURE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("run failed", zap.String("code", string(classifier.Classify(err))), zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
