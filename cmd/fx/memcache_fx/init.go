package memcache_fx

import (
	"context"
	"log"
	"time"

	"go.uber.org/fx"

	mem "menuadvisor/pkg/memcache"
	"menuadvisor/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideSessionStore),
	fx.Invoke(startJanitor))

func provideSessionStore() mem.SessionStore {
	return mem.NewSessions()
}

func startJanitor(lc fx.Lifecycle, store mem.SessionStore) {
	interval := utils.GetDurationWithDefault("SESSION_SWEEP_INTERVAL", 5*time.Minute)
	janitor := mem.NewJanitor(store, interval, func(removed int) {
		log.Printf("Swept %d expired sessions, %d active", removed, store.Len())
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			janitor.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			janitor.Stop()
			return nil
		},
	})
}
