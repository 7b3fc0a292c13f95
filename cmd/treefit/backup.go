package main

import (
	"fmt"

	"github.com/piwi3910/TreeFit/internal/project"
	"github.com/spf13/cobra"
)

func newBackupCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the configuration and run history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <path>",
		Short: "Write the configuration and run history to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := project.LoadHistory(c.historyPath())
			if err != nil {
				return sysErr(fmt.Errorf("failed to load history: %w", err))
			}
			if err := project.ExportAllData(args[0], c.config, history); err != nil {
				return sysErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d runs to %s\n", len(history), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <path>",
		Short: "Restore the configuration and merge the run history from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			history, err := project.LoadHistory(c.historyPath())
			if err != nil {
				return sysErr(fmt.Errorf("failed to load history: %w", err))
			}
			merged := project.MergeHistory(history, backup.History)

			if err := project.SaveAppConfig(c.configPath, backup.Config); err != nil {
				return sysErr(fmt.Errorf("failed to save config: %w", err))
			}
			if err := project.SaveHistory(c.historyPath(), merged); err != nil {
				return sysErr(fmt.Errorf("failed to save history: %w", err))
			}
			c.config = backup.Config
			fmt.Fprintf(cmd.OutOrStdout(), "imported config and %d runs from %s\n", len(merged)-len(history), args[0])
			return nil
		},
	})

	return cmd
}
