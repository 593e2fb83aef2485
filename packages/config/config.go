// Package config loads the dashboard configuration from flags, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/l3montree-dev/honeypot-dashboard/packages/poller"
)

type Config struct {
	APIURL         string
	APIToken       string
	RequestTimeout time.Duration

	Port                  int
	AdminPollInterval     time.Duration
	DashboardPollInterval time.Duration
	HistorySize           int

	DBIPFile string
	LogLevel string
	LogFile  string
}

// flag name -> viper key
var flagKeys = map[string]string{
	"api-url":                 "api_url",
	"api-token":               "api_token",
	"request-timeout":         "request_timeout",
	"port":                    "port",
	"admin-poll-interval":     "admin_poll_interval",
	"dashboard-poll-interval": "dashboard_poll_interval",
	"history-size":            "history_size",
	"dbip-file":               "dbip_file",
	"log-level":               "log_level",
	"log-file":                "log_file",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("honeypot-dashboard", pflag.ContinueOnError)
	fs.String("env-file", ".env", "dotenv file to load before reading the environment")
	fs.String("api-url", "http://localhost:5000", "base url of the honeypot api")
	fs.String("api-token", "", "bearer token sent to the honeypot api")
	fs.Duration("request-timeout", 10*time.Second, "timeout of a single api request")
	fs.Int("port", 1112, "port of the dashboard http server")
	fs.Duration("admin-poll-interval", poller.AdminInterval, "refresh interval of the admin view")
	fs.Duration("dashboard-poll-interval", poller.DashboardInterval, "refresh interval of the dashboard view")
	fs.Int("history-size", 60, "number of snapshots kept per view")
	fs.String("dbip-file", "", "optional dbip country csv used to resolve attacker countries")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-file", "", "optional file receiving a copy of the logs")
	return fs
}

// Load parses args, loads the dotenv file and merges everything into a
// Config. Precedence: flags, environment, dotenv, defaults.
func Load(args []string) (Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	envFile, _ := fs.GetString("env-file")
	// godotenv never overrides variables which are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load %s: %w", envFile, err)
	}

	v := viper.New()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return Config{}, err
		}
	}
	v.AutomaticEnv()
	// VITE_API_URL is what the old frontend used
	if err := v.BindEnv("api_url", "API_URL", "VITE_API_URL"); err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:                v.GetString("api_url"),
		APIToken:              v.GetString("api_token"),
		RequestTimeout:        v.GetDuration("request_timeout"),
		Port:                  v.GetInt("port"),
		AdminPollInterval:     v.GetDuration("admin_poll_interval"),
		DashboardPollInterval: v.GetDuration("dashboard_poll_interval"),
		HistorySize:           v.GetInt("history_size"),
		DBIPFile:              v.GetString("dbip_file"),
		LogLevel:              v.GetString("log_level"),
		LogFile:               v.GetString("log_file"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.APIURL)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.AdminPollInterval <= 0 || c.DashboardPollInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history size must be at least 1, got %d", c.HistorySize)
	}
	return nil
}
