package main

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sky-flux/factdrill/stats"
	"github.com/sky-flux/factdrill/store"
	"github.com/sky-flux/factdrill/users"
)

// app holds what the subcommands share once the root command has run.
type app struct {
	cfg    config
	logger *slog.Logger
	kv     store.KV
	stats  *stats.Service
	users  *users.Service
}

func (a *app) close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

// learner resolves --user, falling back to the selected learner. ok is
// false when neither names a learner.
func (a *app) learner(ctx context.Context) (u users.User, ok bool, err error) {
	if a.cfg.User != "" {
		u, err = a.users.Lookup(ctx, a.cfg.User)
		return u, err == nil, err
	}
	return a.users.Current(ctx)
}

func (a *app) mustLearner(ctx context.Context) (users.User, error) {
	u, ok, err := a.learner(ctx)
	if err != nil {
		return users.User{}, err
	}
	if !ok {
		return users.User{}, errors.New("no learner selected; run `factdrill users add <name>` or pass --user")
	}
	return u, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string

	root := &cobra.Command{
		Use:   "factdrill",
		Short: "Adaptive multiplication table drills",
		Long: `factdrill poses multiplication problems and adapts which fact comes next
to the learner's answers: missed and slow facts come back more often, facts
answered right ten times in a row are retired for the session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(newViper(), cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: parseLevel(cfg.LogLevel),
			}))

			kv, err := store.Open(cmd.Context(), cfg.Store, a.logger)
			if err != nil {
				return err
			}
			a.kv = kv
			a.stats = stats.NewService(kv, a.logger)
			a.users = users.NewService(kv, a.stats, a.logger)
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default $HOME/.factdrill/factdrill.yaml)")
	pf.String("backend", "", "storage backend: sqlite, redis or memory")
	pf.String("data-dir", "", "directory of the sqlite database")
	pf.String("redis-addr", "", "redis address for the redis backend")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.StringP("user", "u", "", "learner name or ID (default: the selected learner)")

	root.AddCommand(
		newDrillCmd(a),
		newStatsCmd(a),
		newUsersCmd(a),
		newSettingsCmd(a),
	)
	return root
}
