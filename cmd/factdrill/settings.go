package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sky-flux/factdrill"
)

func newSettingsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the learner's session settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.mustLearner(cmd.Context())
			if err != nil {
				return err
			}
			return printSettings(cmd, u.Settings, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.AddCommand(newSettingsSetCmd(a), newSettingsResetCmd(a))
	return cmd
}

func newSettingsSetCmd(a *app) *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the learner's session settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := a.mustLearner(ctx)
			if err != nil {
				return err
			}
			u, err = a.users.UpdateSettings(ctx, u.ID, f.apply(cmd.Flags(), u.Settings))
			if err != nil {
				return err
			}
			return printSettings(cmd, u.Settings, false)
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newSettingsResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default session settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := a.mustLearner(ctx)
			if err != nil {
				return err
			}
			if u, err = a.users.ResetSettings(ctx, u.ID); err != nil {
				return err
			}
			return printSettings(cmd, u.Settings, false)
		},
	}
}

func printSettings(cmd *cobra.Command, c factdrill.SessionConfig, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	tw := newTable(cmd)
	row := func(k string, v any) { fmt.Fprintf(tw, "%s\t%v\n", k, v) }
	row("numbers", c.Operands)
	row("mode", c.Mode)
	if c.Mode == factdrill.TimeBoxed {
		row("minutes", c.DurationMinutes)
	} else {
		row("count", c.ProblemCount)
	}
	row("single attempt", c.SingleAttempt)
	row("reveal answer", c.RevealAnswer)
	if c.RevealAnswer {
		row("reveal delay", c.RevealDelay())
	}
	return tw.Flush()
}
