// Package dashboard builds the view models the dashboard pages render.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/l3montree-dev/honeypot-dashboard/packages/apiclient"
	"github.com/l3montree-dev/honeypot-dashboard/packages/honeypot"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
	"github.com/l3montree-dev/honeypot-dashboard/packages/utils"
)

// RecentActivityLimit is the number of attacks shown on the dashboard.
const RecentActivityLimit = 5

type source interface {
	GetAttacks(ctx context.Context) apiclient.Result[[]types.Attack]
	GetStats(ctx context.Context) apiclient.Result[types.Stats]
	HoneypotStats(ctx context.Context) apiclient.Result[types.Summary]
	HoneypotLogs(ctx context.Context) apiclient.Result[[]types.AttackRecord]
}

func apiStatus(sources ...apiclient.Source) string {
	for _, s := range sources {
		if s != apiclient.Live {
			return types.APIStatusDemo
		}
	}
	return types.APIStatusConnected
}

// Overview loads the analyst dashboard. Summary and logs are fetched
// concurrently.
func Overview(ctx context.Context, src source) types.DashboardView {
	var stats apiclient.Result[types.Summary]
	var logs apiclient.Result[[]types.AttackRecord]

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats = src.HoneypotStats(ctx)
		return nil
	})
	g.Go(func() error {
		logs = src.HoneypotLogs(ctx)
		return nil
	})
	g.Wait() // nolint

	return types.DashboardView{
		Stats:            stats.Data,
		RecentActivities: utils.Take(logs.Data, RecentActivityLimit),
		APIStatus:        apiStatus(stats.Source, logs.Source),
	}
}

// Admin loads the admin dashboard.
func Admin(ctx context.Context, src source) types.AdminView {
	var attacks apiclient.Result[[]types.Attack]
	var stats apiclient.Result[types.Stats]

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		attacks = src.GetAttacks(ctx)
		return nil
	})
	g.Go(func() error {
		stats = src.GetStats(ctx)
		return nil
	})
	g.Wait() // nolint

	return types.AdminView{
		Stats:     stats.Data,
		Attacks:   attacks.Data,
		Honeypots: honeypot.Status(attacks.Data),
		APIStatus: apiStatus(attacks.Source, stats.Source),
	}
}
