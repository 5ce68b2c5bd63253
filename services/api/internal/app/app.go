package app

import (
	"fmt"
	"strings"
	"time"

	"thinkbyte/internal/delivery"
	"thinkbyte/pkg/store"
)

const (
	defaultSentDelay      = 1 * time.Second
	defaultDeliveredDelay = 2 * time.Second
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	SessionStrategy string
	SessionTTL      time.Duration
	JWTSecret       string
	SeedDemoData    bool

	// SentDelay/DeliveredDelay tune the simulated message delivery clock.
	// Zero means the defaults (1s/2s); tests use millisecond values.
	SentDelay      time.Duration
	DeliveredDelay time.Duration

	Store    store.Store
	Sessions store.SessionStore
}

// App wires storage, sessions and the delivery scheduler together.
type App struct {
	store          store.Store
	sessions       store.SessionStore
	scheduler      *delivery.Scheduler
	sentDelay      time.Duration
	deliveredDelay time.Duration
}

// New constructs the application with database storage and session management.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.SentDelay == 0 {
		cfg.SentDelay = defaultSentDelay
	}
	if cfg.DeliveredDelay == 0 {
		cfg.DeliveredDelay = defaultDeliveredDelay
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		switch cfg.SessionStrategy {
		case "jwt":
			jwtStore, err := store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL)
			if err != nil {
				return nil, fmt.Errorf("init jwt session store: %w", err)
			}
			sessionStore = jwtStore
		case "", "redis":
			if strings.TrimSpace(cfg.RedisAddr) == "" {
				return nil, fmt.Errorf("redisAddr is required for redis session strategy")
			}
			sessionStore = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		default:
			return nil, fmt.Errorf("unknown session strategy %q", cfg.SessionStrategy)
		}
	}

	if cfg.SeedDemoData {
		if err := store.SeedDemoData(dataStore); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	a := &App{
		store:          dataStore,
		sessions:       sessionStore,
		sentDelay:      cfg.SentDelay,
		deliveredDelay: cfg.DeliveredDelay,
	}
	a.scheduler = delivery.NewScheduler(a.applyMessageStatus)
	return a, nil
}

// Close stops the delivery scheduler, dropping pending transitions.
func (a *App) Close() {
	a.scheduler.Close()
}
