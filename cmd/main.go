package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/natefinch/lumberjack"

	"github.com/l3montree-dev/honeypot-dashboard/packages/apiclient"
	"github.com/l3montree-dev/honeypot-dashboard/packages/config"
	"github.com/l3montree-dev/honeypot-dashboard/packages/dashboard"
	"github.com/l3montree-dev/honeypot-dashboard/packages/dbip"
	"github.com/l3montree-dev/honeypot-dashboard/packages/pipeline"
	"github.com/l3montree-dev/honeypot-dashboard/packages/poller"
	"github.com/l3montree-dev/honeypot-dashboard/packages/session"
	"github.com/l3montree-dev/honeypot-dashboard/packages/transport"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("could not load config", "err", err)
		os.Exit(1)
	}
	InitLogger(cfg.LogLevel, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientConfig := apiclient.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
		Token:   cfg.APIToken,
	}
	if cfg.DBIPFile != "" {
		dbIp, err := dbip.NewIpToCountry(cfg.DBIPFile)
		if err != nil {
			slog.Warn("could not load dbip file, countries stay unknown", "file", cfg.DBIPFile, "err", err)
		} else {
			slog.Info("loaded dbip file", "ranges", dbIp.Len())
			clientConfig.Countries = dbIp
		}
	}
	client := apiclient.New(clientConfig)
	if err := client.HealthCheck(ctx); err != nil {
		slog.Warn("honeypot api not reachable, serving demo data until it is", "url", client.BaseURL(), "err", err)
	}

	auth, err := session.NewAuthenticator(session.DefaultAccounts()...)
	if err != nil {
		panic(err)
	}
	sessions := session.NewManager(auth)

	viewStore := transport.NewViewStore(cfg.HistorySize)
	sseTransport := transport.NewSSE()
	websocketTransport := transport.NewWebsocket()

	httpTransport := transport.NewHTTP(transport.HTTPConfig{
		Port:      cfg.Port,
		Sessions:  sessions,
		Views:     viewStore,
		Data:      client,
		SSE:       sseTransport,
		Websocket: websocketTransport,
	})

	adminPoller := poller.New(types.ViewAdmin, cfg.AdminPollInterval, func(ctx context.Context) types.AdminView {
		return dashboard.Admin(ctx, client)
	})
	dashboardPoller := poller.New(types.ViewDashboard, cfg.DashboardPollInterval, func(ctx context.Context) types.DashboardView {
		return dashboard.Overview(ctx, client)
	})

	snapshots := pipeline.Merge(
		pipeline.Map(adminPoller.Run(ctx), snapshotOf[types.AdminView](types.ViewAdmin)),
		pipeline.Map(dashboardPoller.Run(ctx), snapshotOf[types.DashboardView](types.ViewDashboard)),
	)
	listeners := make([]chan<- types.Snapshot, 0, 3)
	for _, t := range []transport.Transport{viewStore, sseTransport, websocketTransport} {
		listeners = append(listeners, t.Listen())
	}
	pipeline.Broadcast(snapshots, listeners...)

	go func() {
		if err := httpTransport.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http transport stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpTransport.Shutdown(shutdownCtx); err != nil {
		slog.Error("could not shut down http transport", "err", err)
	}
}

func snapshotOf[T any](view string) func(T) (types.Snapshot, error) {
	return func(data T) (types.Snapshot, error) {
		return types.Snapshot{View: view, Time: time.Now(), Data: data}, nil
	}
}

func InitLogger(level string, file string) {
	var out io.Writer = os.Stdout
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		})
	}
	loggingHandler := tint.NewHandler(out, &tint.Options{
		AddSource: true,
		Level:     parseLevel(level),
		// no escape codes in the log file
		NoColor: file != "",
	})
	logger := slog.New(loggingHandler)
	slog.SetDefault(logger)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
