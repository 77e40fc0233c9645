// Package cmd provides the CLI commands for airaware.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"airaware/adapters/schemefile"
	"airaware/internal/config"
	"airaware/internal/logging"
)

// version is stamped into reports and the version command.
const version = "0.1.0"

var (
	cfgFile     string
	verbose     bool
	noColor     bool
	schemeFiles []string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "airaware",
	Short: "Compute and forecast air quality indexes",
	Long: `airaware turns raw pollutant concentrations into an Air Quality
Index, classifies it into health categories, and projects short-term
trends from historical series.

Examples:
  airaware compute readings.json
  airaware compute -r pm25=35.4 -r o3=61
  airaware forecast --horizon 48 history.jsonl
  airaware simulate --profile industrial --history 30`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.airaware.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringSliceVar(&schemeFiles, "schemes", nil, "HCL scheme files to register (repeatable)")

	// Add subcommands
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(schemeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	} else {
		config.ApplyEnv(config.Get())
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	if err := registerSchemeFiles(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schemes: %v\n", err)
		os.Exit(1)
	}
}

// registerSchemeFiles loads the HCL scheme files named by the config
// and the --schemes flag into the global registry.
func registerSchemeFiles(cfg *config.Config) error {
	paths := append([]string{}, cfg.Engine.SchemePaths...)
	paths = append(paths, schemeFiles...)
	if len(paths) == 0 {
		return nil
	}

	loader := schemefile.NewLoader()
	for _, path := range paths {
		if _, err := loader.LoadAndRegister(path); err != nil {
			return err
		}
	}
	return nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("airaware version " + version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

// configInitCmd writes a default configuration file
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath()
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".airaware.json"
	}
	return filepath.Join(home, ".airaware.json")
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
