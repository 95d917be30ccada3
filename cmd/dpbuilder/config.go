package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgilissen/DemoscenePackBuilder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	RunE:  runConfigInit,
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Validate the configuration file",
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTestCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", configPath)
	}
	if err := config.WriteDefault(configPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Println("Validation errors:")
		for _, e := range errs {
			fmt.Printf("  - %s\n", e)
		}
		return fmt.Errorf("configuration invalid")
	}

	fmt.Println("Configuration Summary:")
	fmt.Printf("  API:      %s (timeout %s)\n", cfg.API.BaseURL, cfg.API.Timeout)
	fmt.Printf("  Output:   %s\n", cfg.Output.Dir)
	fmt.Printf("  Download: delay %s, timeout %s\n", cfg.Download.Delay, cfg.Download.Timeout)
	if len(cfg.Download.LinkClasses) > 0 {
		fmt.Printf("  Links:    %s\n", strings.Join(cfg.Download.LinkClasses, ", "))
	}
	fmt.Printf("  Log:      %s\n", cfg.Log.Level)

	fmt.Println("\nConfiguration valid!")
	return nil
}
