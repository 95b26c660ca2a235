/*
Copyright 2016 Alex Baden

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	plyfile "github.com/cobaltgray/go-plyfile"
	"github.com/cobaltgray/go-plyfile/internal/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Shared state set during PersistentPreRun
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd is the base command for plyctl.
var rootCmd = &cobra.Command{
	Use:   "plyctl",
	Short: "Inspect and convert PLY mesh files",
	Long: `plyctl inspects PLY files and converts them between the ascii,
binary_little_endian and binary_big_endian encodings. Files ending in .gz
are read and written gzip compressed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = newLogger(cfg, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger(c *config.Config, verbose bool) (*zap.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zap.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// options returns the plyfile options every command passes to the library.
func options() ([]plyfile.Option, error) {
	ct, err := cfg.CountType()
	if err != nil {
		return nil, err
	}
	return []plyfile.Option{plyfile.WithLogger(logger), plyfile.WithListCountType(ct)}, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.plyctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress at debug level")
}
