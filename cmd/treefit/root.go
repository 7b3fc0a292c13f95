package main

import (
	"errors"
	"path/filepath"

	"github.com/piwi3910/TreeFit/internal/logging"
	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/piwi3910/TreeFit/internal/project"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// systemError marks failures that are not caused by the user's input, such
// as unwritable output files.
type systemError struct {
	err error
}

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return systemError{err: err}
}

// exitCode maps a command error to an exit code. Anything not marked as a
// system error is the user's: bad flags, bad input files.
func exitCode(err error) int {
	var se systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	configPath string
	logLevel   string
	config     model.AppConfig
}

func (c *cli) historyPath() string {
	return filepath.Join(filepath.Dir(c.configPath), "history.json")
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "treefit",
		Short:         "TreeFit checks whether presents fit under the trees",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath == "" {
				c.configPath = project.DefaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			level := cfg.LogLevel
			if c.logLevel != "" {
				level = c.logLevel
			}
			return sysErr(logging.Init(cfg.LogFile, level))
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return sysErr(logging.Close())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.treefit/config.json)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newSolveCmd(c))
	root.AddCommand(newVerifyCmd(c))
	root.AddCommand(newConfigCmd(c))
	root.AddCommand(newBackupCmd(c))
	root.AddCommand(newVersionCmd())

	return root
}
