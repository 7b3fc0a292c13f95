package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/piwi3910/TreeFit/internal/project"
	"github.com/spf13/cobra"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(c.config, "", "  ")
			if err != nil {
				return sysErr(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.configPath)
			}
			if err := project.SaveAppConfig(c.configPath, model.DefaultAppConfig()); err != nil {
				return sysErr(fmt.Errorf("failed to write config: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", c.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}
