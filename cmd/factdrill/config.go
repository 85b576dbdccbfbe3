package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sky-flux/factdrill/store"
)

// config is the CLI configuration, read from factdrill.yaml, FACTDRILL_*
// environment variables and flags, in increasing priority.
type config struct {
	Store    store.Config `mapstructure:",squash"`
	LogLevel string       `mapstructure:"log_level"`
	User     string       `mapstructure:"user"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".factdrill"
	}
	return filepath.Join(home, ".factdrill")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("backend", store.BackendSQLite)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("dsn", "")
	v.SetDefault("key_prefix", store.DefaultKeyPrefix)
	v.SetDefault("log_level", "warn")
	v.SetDefault("redis.addr", store.DefaultRedisConfig().Addr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("user", "")

	v.SetEnvPrefix("FACTDRILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file named by --config, or factdrill.yaml in
// the data directory or the working directory. A missing file is fine. A
// .env file in the working directory seeds FACTDRILL_* variables that are
// not already set.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, file string) (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, errors.Wrap(err, "load .env")
	}

	for key, flag := range map[string]string{
		"backend":    "backend",
		"data_dir":   "data-dir",
		"log_level":  "log-level",
		"redis.addr": "redis-addr",
		"user":       "user",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config{}, errors.Wrapf(err, "bind flag %s", flag)
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("factdrill")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("data_dir"))
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return config{}, errors.Wrap(err, "read config")
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return l
}
