package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/targetsweep/pkg/sweep/config"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect targetsweep configuration.

Configuration is optional and loaded from:
  ` + config.DefaultFile() + `

Environment variables override file settings using the ` + config.EnvPrefix + `_ prefix:
  ` + config.EnvName("trash.backend") + `=native
  ` + config.EnvName("logging.level") + `=debug`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, a.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			path := a.cfg.File()
			if path == "" {
				path = config.DefaultFile()
			}
			printInfo(cmd.OutOrStdout(), "%s", path)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		// The file may not exist yet, so it is not loaded first.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfgFile
			if path == "" {
				path = config.DefaultFile()
			}
			path, err := config.ExpandPath(path)
			if err != nil {
				return err
			}

			created, err := config.WriteDefault(path)
			if err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			if created {
				printInfo(cmd.OutOrStdout(), "Created default config file: %s", path)
			} else {
				printInfo(cmd.OutOrStdout(), "Config file already exists: %s", path)
			}
			return nil
		},
	})

	return configCmd
}

// runConfigShow prints the effective configuration as YAML.
func runConfigShow(cmd *cobra.Command, cfg *config.Config) error {
	w := cmd.OutOrStdout()

	if file := cfg.File(); file != "" {
		printInfo(w, "# Config file: %s", file)
	} else {
		printInfo(w, "# Config file: (none, using defaults)")
	}

	overrides := config.EnvOverrides()
	for _, o := range overrides {
		printInfo(w, "# Environment: %s", o)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
