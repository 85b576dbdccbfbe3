package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage learners",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listUsers(cmd, a)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List learners",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return listUsers(cmd, a)
			},
		},
		newUsersAddCmd(a),
		&cobra.Command{
			Use:   "select <name|id>",
			Short: "Make a learner current",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				u, err := a.users.Lookup(ctx, args[0])
				if err != nil {
					return err
				}
				if _, err := a.users.Select(ctx, u.ID); err != nil {
					return err
				}
				printf(cmd, "Now practicing as %s.\n", u.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Show the current learner",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				u, ok, err := a.users.Current(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					printf(cmd, "No learner selected.\n")
					return nil
				}
				printf(cmd, "%s (%s)\n", u.Name, u.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Clear the current learner",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.users.Logout(cmd.Context())
			},
		},
		&cobra.Command{
			Use:     "delete <name|id>",
			Aliases: []string{"rm"},
			Short:   "Delete a learner and their statistics",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				u, err := a.users.Lookup(ctx, args[0])
				if err != nil {
					return err
				}
				if err := a.users.Delete(ctx, u.ID); err != nil {
					return err
				}
				printf(cmd, "Deleted %s.\n", u.Name)
				return nil
			},
		},
	)
	return cmd
}

func newUsersAddCmd(a *app) *cobra.Command {
	var sel bool
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a learner",
		Long:  "Add a learner with default settings. The first learner is selected automatically.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, hasCurrent, err := a.users.Current(ctx)
			if err != nil {
				return err
			}
			u, err := a.users.Create(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printf(cmd, "Added %s (%s).\n", u.Name, u.ID)
			if sel || !hasCurrent {
				if _, err := a.users.Select(ctx, u.ID); err != nil {
					return err
				}
				printf(cmd, "Now practicing as %s.\n", u.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&sel, "select", "s", false, "make the new learner current")
	return cmd
}

func listUsers(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	us, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	if len(us) == 0 {
		printf(cmd, "No learners yet; add one with `factdrill users add <name>`.\n")
		return nil
	}
	cur, _, err := a.users.Current(ctx)
	if err != nil {
		return err
	}

	tw := newTable(cmd)
	fmt.Fprintln(tw, "\tNAME\tID\tCREATED")
	for _, u := range us {
		mark := ""
		if u.ID == cur.ID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, u.Name, u.ID, u.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
