package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"entregador/internal/config"
	"entregador/internal/latency"
	"entregador/models"
)

// StorageKey is where the signed-in driver record is kept.
const StorageKey = "user"

// MinCodeLength is the shortest delivery code accepted when not configured.
const MinCodeLength = 6

var ErrNotAuthenticated = errors.New("not authenticated")

// Storage persists small string records by key.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Gate holds the signed-in driver.
type Gate struct {
	storage    Storage
	cfg        config.AuthConfig
	loginDelay time.Duration
	log        *zap.Logger
	now        func() time.Time

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

// NewGate builds a gate over storage. A zero MinCodeLength falls back to MinCodeLength.
func NewGate(storage Storage, cfg config.AuthConfig, loginDelay time.Duration, log *zap.Logger) *Gate {
	if cfg.MinCodeLength <= 0 {
		cfg.MinCodeLength = MinCodeLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{storage: storage, cfg: cfg, loginDelay: loginDelay, log: log, now: time.Now, loading: true}
}

// Restore signs in from the stored record, if it still holds a valid session.
// A record that cannot be decoded or whose token is invalid is removed.
func (g *Gate) Restore(ctx context.Context) error {
	defer g.setLoading(false)

	raw, ok, err := g.storage.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		g.log.Warn("stored user unreadable, clearing", zap.Error(err))
		return g.clear(ctx)
	}
	p, err := ParseToken(u.SessionToken, g.cfg.JWTSecret)
	if err != nil || p.Subject != u.ID {
		g.log.Info("stored session rejected, clearing", zap.String("user_id", u.ID), zap.Error(err))
		return g.clear(ctx)
	}

	g.mu.Lock()
	g.user = &u
	g.mu.Unlock()
	g.log.Info("session restored", zap.String("user_id", u.ID))
	return nil
}

// Login validates code and signs the driver in. An unacceptable code returns false with no error.
func (g *Gate) Login(ctx context.Context, code string) (bool, error) {
	g.setLoading(true)
	defer g.setLoading(false)

	if err := latency.Sleep(ctx, g.loginDelay); err != nil {
		return false, err
	}

	// Length is counted in characters, as typed.
	n := utf8.RuneCountInString(code)
	bypass := g.cfg.DevBypassCode != "" && strings.EqualFold(code, g.cfg.DevBypassCode)
	if !bypass && n < g.cfg.MinCodeLength {
		g.log.Info("login rejected", zap.Int("code_length", n))
		return false, nil
	}

	now := g.now()
	u := models.User{
		ID:           uuid.NewString(),
		Name:         "João Silva",
		Email:        "joao.silva@deliveries.com",
		DeliveryCode: code,
		IsActive:     true,
		CreatedAt:    now,
	}
	if bypass {
		u.Name = "Entregador Teste"
		u.Email = "teste@deliveries.com"
	}
	tok, err := IssueToken(g.cfg.JWTSecret, u, g.cfg.SessionTTL, now)
	if err != nil {
		return false, fmt.Errorf("issue session token: %w", err)
	}
	u.SessionToken = tok

	raw, err := json.Marshal(u)
	if err != nil {
		return false, fmt.Errorf("encode user: %w", err)
	}
	if err := g.storage.Set(ctx, StorageKey, string(raw)); err != nil {
		return false, fmt.Errorf("persist user: %w", err)
	}

	g.mu.Lock()
	g.user = &u
	g.mu.Unlock()
	g.log.Info("driver signed in", zap.String("user_id", u.ID), zap.Bool("bypass", bypass))
	return true, nil
}

// Logout forgets the driver, both in memory and in storage.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.clear(ctx); err != nil {
		return err
	}
	g.log.Info("driver signed out")
	return nil
}

func (g *Gate) clear(ctx context.Context) error {
	g.mu.Lock()
	g.user = nil
	g.mu.Unlock()
	if err := g.storage.Remove(ctx, StorageKey); err != nil {
		return fmt.Errorf("remove stored user: %w", err)
	}
	return nil
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user != nil
}

// User returns the signed-in driver.
func (g *Gate) User() (models.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return models.User{}, false
	}
	return *g.user, true
}

// IsLoading is true until Restore finishes and while a login is in flight.
func (g *Gate) IsLoading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

// Principal returns the driver as a context principal.
func (g *Gate) Principal() (*Principal, error) {
	u, ok := g.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return ParseToken(u.SessionToken, g.cfg.JWTSecret)
}

func (g *Gate) setLoading(v bool) {
	g.mu.Lock()
	g.loading = v
	g.mu.Unlock()
}
