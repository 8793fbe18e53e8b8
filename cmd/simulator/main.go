package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"entregador/internal/auth"
	"entregador/internal/config"
	"entregador/internal/db"
	"entregador/internal/logger"
	"entregador/internal/notify"
	"entregador/internal/store"
	"entregador/internal/workflow"
	"entregador/repository"
)

// Runs one driver shift against the seed data: sign in, load, start the
// route and walk every route delivery through the workflow.
func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.New(cfg.Log.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = lg.Sync() }()
	lg.Info("configuration loaded", zap.Stringer("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open DB
	d, err := db.Open(cfg.Database.Path, lg)
	if err != nil {
		lg.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			lg.Warn("close db", zap.Error(err))
		}
	}()

	gate := auth.NewGate(repository.NewKVRepository(d), cfg.Auth, cfg.Simulation.LoginDelay, lg)
	if err := gate.Restore(ctx); err != nil {
		lg.Fatal("restore session", zap.Error(err))
	}
	if !gate.IsAuthenticated() {
		code := cfg.Auth.DevBypassCode
		if len(os.Args) > 1 {
			code = os.Args[1]
		}
		ok, err := gate.Login(ctx, code)
		if err != nil {
			lg.Fatal("login", zap.Error(err))
		}
		if !ok {
			lg.Fatal("login rejected: invalid delivery code")
		}
	}
	p, err := gate.Principal()
	if err != nil {
		lg.Fatal("session principal", zap.Error(err))
	}
	ctx = auth.WithPrincipal(ctx, p)

	tray := notify.NewTray(cfg.Notify.ToastDuration, lg)
	defer tray.Close()

	st := store.New(repository.NewSeedDeliverySource(cfg.Simulation.LoadDelay, nil), store.WithLogger(lg))
	unsubscribe := st.Subscribe(func(s store.State) {
		lg.Debug("store changed", zap.Int("deliveries", len(s.Deliveries)), zap.Bool("loading", s.IsLoading))
	})
	defer unsubscribe()

	if err := runShift(ctx, st, tray, cfg, lg); err != nil {
		lg.Fatal("shift aborted", zap.Error(err))
	}
}

func runShift(ctx context.Context, st *store.Store, tray notify.Notifier, cfg *config.Config, lg *zap.Logger) error {
	driver, err := auth.RequireDriver(ctx)
	if err != nil {
		return err
	}
	lg = lg.With(zap.String("driver", driver.Name))

	if err := st.LoadDeliveries(ctx); err != nil {
		return err
	}
	stats := st.Stats()
	lg.Info("deliveries loaded", zap.Int("pending", stats.Pending))

	route := st.StartRoute()
	delays := workflow.Delays{
		Collect:  cfg.Simulation.CollectDelay,
		Deliver:  cfg.Simulation.DeliverDelay,
		Navigate: cfg.Simulation.NavigateDelay,
	}
	for _, id := range route.DeliveryIDs {
		if err := runDelivery(ctx, st, id, delays, tray, lg); err != nil {
			return err
		}
		if p, ok := st.RouteProgress(); ok {
			lg.Info("route progress",
				zap.Int("completed", p.Completed),
				zap.Int("total", p.Total),
				zap.Float64("percentage", p.Percentage),
				zap.Float64("remaining_km", p.RemainingKm))
		}
	}

	done, err := st.CompleteRoute()
	if err != nil {
		return err
	}
	stats = st.Stats()
	counts := st.HistoryCounts()
	lg.Info("shift finished",
		zap.String("route_id", done.ID),
		zap.Intp("actual_minutes", done.ActualDuration),
		zap.Int("completed_today", stats.CompletedToday),
		zap.String("earnings_today", stats.EarningsToday.String()),
		zap.Int("history_delivered", counts[store.HistoryDelivered]),
		zap.Int("history_failed", counts[store.HistoryFailed]))
	return nil
}

func runDelivery(ctx context.Context, st *store.Store, id string, delays workflow.Delays, tray notify.Notifier, lg *zap.Logger) error {
	s, err := workflow.NewSession(st, id,
		workflow.WithNotifier(tray),
		workflow.WithDelays(delays),
		workflow.WithLogger(lg))
	if err != nil {
		return err
	}
	defer s.Close()

	if s.Finished() {
		lg.Info("nothing left to do", zap.String("delivery_id", id))
		return nil
	}
	if s.Stage() == workflow.StageCollect {
		if err := s.ConfirmCollection(ctx); err != nil {
			return err
		}
	}
	if s.Stage() == workflow.StageDeliver {
		if err := s.ConfirmDelivery(ctx); err != nil {
			return err
		}
	}
	if s.Finished() {
		return nil
	}

	// All containers back, none damaged.
	if err := s.SetReturnQuantity(s.MaxReturnQuantity()); err != nil {
		return err
	}
	if err := s.SetDamaged(false); err != nil {
		return err
	}
	err = s.CompleteReturn(ctx)
	if errors.Is(err, workflow.ErrDamageUndetermined) {
		return s.Skip(ctx)
	}
	return err
}
