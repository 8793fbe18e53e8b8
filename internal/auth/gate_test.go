package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entregador/internal/config"
	"entregador/internal/testutil"
	"entregador/models"
	"entregador/repository"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     testSecret,
		DevBypassCode: "teste",
		MinCodeLength: 6,
		SessionTTL:    time.Hour,
	}
}

func newGate(t *testing.T, name string) (*Gate, *repository.KVRepository) {
	t.Helper()
	kv := repository.NewKVRepository(testutil.OpenInMemoryDB(t, name))
	return NewGate(kv, testAuthConfig(), 0, nil), kv
}

func TestLogin_CodeRules(t *testing.T) {
	cases := []struct {
		code string
		ok   bool
		name string
	}{
		{"12345", false, ""},
		{"", false, ""},
		{"123456", true, "João Silva"},
		{"TESTE", true, "Entregador Teste"},
		{"teste", true, "Entregador Teste"},
		{"çãçã", false, ""},
		{"ação1", false, ""},
		{"ação12", true, "João Silva"},
		{"      x", true, "João Silva"},
		{" teste", true, "João Silva"},
	}
	for i, c := range cases {
		g, _ := newGate(t, fmt.Sprintf("gate_rules_%d", i))
		ok, err := g.Login(context.Background(), c.code)
		require.NoError(t, err, c.code)
		assert.Equal(t, c.ok, ok, c.code)
		assert.Equal(t, c.ok, g.IsAuthenticated(), c.code)
		if c.ok {
			u, _ := g.User()
			assert.Equal(t, c.name, u.Name)
			assert.NotEmpty(t, u.SessionToken)
		}
	}
}

func TestLogin_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	g, kv := newGate(t, "gate_restore")
	ok, err := g.Login(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, g.IsLoading())

	raw, found, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	var stored models.User
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "joao.silva@deliveries.com", stored.Email)

	fresh := NewGate(kv, testAuthConfig(), 0, nil)
	assert.True(t, fresh.IsLoading())
	require.NoError(t, fresh.Restore(ctx))
	assert.False(t, fresh.IsLoading())
	require.True(t, fresh.IsAuthenticated())
	u, _ := fresh.User()
	assert.Equal(t, stored.ID, u.ID)

	p, err := fresh.Principal()
	require.NoError(t, err)
	assert.Equal(t, KindDriver, p.Kind)
}

func TestRestore_ClearsBadRecords(t *testing.T) {
	ctx := context.Background()
	_, kv := newGate(t, "gate_bad")

	for _, raw := range []string{
		"{not json",
		`{"id":"u1","name":"x","sessionToken":"garbage"}`,
	} {
		require.NoError(t, kv.Set(ctx, StorageKey, raw))
		g := NewGate(kv, testAuthConfig(), 0, nil)
		require.NoError(t, g.Restore(ctx))
		assert.False(t, g.IsAuthenticated())
		_, found, _ := kv.Get(ctx, StorageKey)
		assert.False(t, found, "bad record should be removed")
	}
}

func TestRestore_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	_, kv := newGate(t, "gate_expired")
	u := models.User{ID: "u1", Name: "João Silva"}
	u.SessionToken = testutil.GenerateJWTHS256(t, testSecret, u.Name, KindDriver, time.Now().Add(-time.Hour))
	raw, _ := json.Marshal(u)
	require.NoError(t, kv.Set(ctx, StorageKey, string(raw)))

	g := NewGate(kv, testAuthConfig(), 0, nil)
	require.NoError(t, g.Restore(ctx))
	assert.False(t, g.IsAuthenticated())
}

func TestRestore_Empty(t *testing.T) {
	g, _ := newGate(t, "gate_empty")
	require.NoError(t, g.Restore(context.Background()))
	assert.False(t, g.IsAuthenticated())
	_, err := g.Principal()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	g, kv := newGate(t, "gate_logout")
	_, err := g.Login(ctx, "teste")
	require.NoError(t, err)

	require.NoError(t, g.Logout(ctx))
	assert.False(t, g.IsAuthenticated())
	_, found, _ := kv.Get(ctx, StorageKey)
	assert.False(t, found)
}

func TestLogin_Cancelled(t *testing.T) {
	g := NewGate(&memStorage{}, testAuthConfig(), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := g.Login(ctx, "123456")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, g.IsLoading())
}

func TestLogin_StorageFailure(t *testing.T) {
	g := NewGate(&memStorage{failSet: true}, testAuthConfig(), 0, nil)
	ok, err := g.Login(context.Background(), "123456")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.False(t, g.IsAuthenticated())
}

type memStorage struct {
	data    map[string]string
	failSet bool
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
