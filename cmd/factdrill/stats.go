package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sky-flux/factdrill/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		all  bool
		weak int
	)
	cmd := &cobra.Command{
		Use:   "stats [date]",
		Short: "Show practice statistics",
		Long: `Show the learner's statistics for a day (YYYY-MM-DD, default today) or,
with --all, for every recorded day combined.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.mustLearner(ctx)
			if err != nil {
				return err
			}
			us, err := a.stats.Get(ctx, u.ID)
			if err != nil {
				return err
			}

			now := time.Now()
			cprintf(cmd, title, "%s\n", u.Name)
			printf(cmd, "Streak: %d day(s), %d day(s) recorded\n\n", us.Streak(now), len(us.Days))

			var problems []stats.ProblemStat
			if all {
				problems = us.Merge()
			} else {
				date := stats.DayKey(now)
				if len(args) == 1 {
					date, err = parseDate(args[0])
					if err != nil {
						return err
					}
				}
				day, ok := us.Days[date]
				if !ok {
					printf(cmd, "No practice on %s.\n", date)
					return nil
				}
				printf(cmd, "%s: %d session(s), %d/%d correct (%.1f%%), %.1fs per problem\n\n",
					date, day.Sessions, day.CorrectAnswers, day.TotalProblems, day.Accuracy, day.AverageTime)
				problems = day.Problems
			}
			return printProblems(cmd, stats.Weakest(problems, weak))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "combine every recorded day")
	cmd.Flags().IntVarP(&weak, "weakest", "w", 10, "number of weakest facts to list (0: all)")

	cmd.AddCommand(newStatsDatesCmd(a), newStatsClearCmd(a))
	return cmd
}

func newStatsDatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List the days with recorded practice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := a.mustLearner(ctx)
			if err != nil {
				return err
			}
			us, err := a.stats.Get(ctx, u.ID)
			if err != nil {
				return err
			}
			tw := newTable(cmd)
			fmt.Fprintln(tw, "DATE\tSESSIONS\tPROBLEMS\tACCURACY")
			for _, date := range us.Dates() {
				d := us.Days[date]
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", date, d.Sessions, d.TotalProblems, d.Accuracy)
			}
			return tw.Flush()
		},
	}
}

func newStatsClearCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear [date]",
		Short: "Delete the statistics of one day, or of every day with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.mustLearner(ctx)
			if err != nil {
				return err
			}
			var date string
			switch {
			case all && len(args) > 0:
				return errors.New("pass either a date or --all")
			case all:
			case len(args) == 1:
				if date, err = parseDate(args[0]); err != nil {
					return err
				}
			default:
				date = stats.DayKey(time.Now())
			}
			if err := a.stats.Clear(ctx, u.ID, date); err != nil {
				return err
			}
			if date == "" {
				printf(cmd, "Cleared all statistics of %s.\n", u.Name)
			} else {
				printf(cmd, "Cleared the statistics of %s for %s.\n", u.Name, date)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "clear every day")
	return cmd
}

func parseDate(s string) (string, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", errors.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return stats.DayKey(t), nil
}

func printProblems(cmd *cobra.Command, ps []stats.ProblemStat) error {
	if len(ps) == 0 {
		return nil
	}
	tw := newTable(cmd)
	fmt.Fprintln(tw, "FACT\tATTEMPTS\tCORRECT\tACCURACY\tAVG TIME")
	for _, p := range ps {
		fmt.Fprintf(tw, "%d × %d\t%d\t%d\t%.1f%%\t%.1fs\n",
			p.Lo, p.Hi, p.TotalAttempts, p.CorrectAttempts, p.Accuracy(), p.AverageTime)
	}
	return tw.Flush()
}
