package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hwidctl/internal/workflow"
)

const defaultConfigPath = "/etc/hwidctl/config.yaml"

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "hwidctl",
		Short:         "Interactive HWID maintenance for RMA devices",
		Long:          "hwidctl backs up, zeroes, and restores the HWID key in the device VPD,\ncoordinating the external write-protection and VPD utilities.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			menu := workflow.NewMenu(os.Stdin, os.Stdout, a.trail, a.engine, a.workflows, a.model)
			return menu.Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "config file (yaml or json)")

	root.AddCommand(
		newBackupCmd(&cfgPath),
		newRestoreCmd(&cfgPath),
		newZeroCmd(&cfgPath),
		newWPDisableCmd(&cfgPath),
		newHistoryCmd(&cfgPath),
	)
	return root
}

// setup builds the app; the config file is optional as long as the operator
// did not point at one explicitly.
func setup(cmd *cobra.Command, cfgPath string) (*app, error) {
	optional := !cmd.Root().PersistentFlags().Changed("config")
	return newApp(cmd.Context(), cfgPath, optional)
}

func newBackupCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Dump the full VPD store to the backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.manager.Backup(cmd.Context())
		},
	}
}

func newRestoreCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the HWID key from the backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.manager.Restore(cmd.Context())
		},
	}
}

func newZeroCmd(cfgPath *string) *cobra.Command {
	var keepWP bool

	cmd := &cobra.Command{
		Use:   "zero",
		Short: "Back up the VPD, then zero the HWID key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			name := workflow.NameZeroProtected
			if keepWP {
				name = workflow.NameZeroKeepWP
			}
			wf, err := a.byName(name)
			if err != nil {
				return err
			}
			return a.engine.Run(cmd.Context(), wf)
		},
	}
	cmd.Flags().BoolVar(&keepWP, "keep-wp", false, "skip the write-protection disable step")
	return cmd
}

func newWPDisableCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "wp-disable",
		Short: "Disable firmware write protection only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			wf, err := a.byName(workflow.NameDisableWP)
			if err != nil {
				return err
			}
			return a.engine.Run(cmd.Context(), wf)
		},
	}
}

func newHistoryCmd(cfgPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent workflow steps from the history journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.store == nil {
				return fmt.Errorf("history is disabled; set history.driver in the config")
			}
			entries, err := a.store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "ok"
				if !e.OK {
					status = "FAIL: " + e.Error
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s/%s  %s\n",
					e.At.Format("2006-01-02 15:04:05"), e.Workflow, e.Step, status)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show")
	return cmd
}
