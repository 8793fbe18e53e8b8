package db

import (
	"path/filepath"
	"testing"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	d, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected at least one applied migration")
	}
	if _, err := d.Exec(`INSERT INTO kv_store (key, value) VALUES ('k', 'v')`); err != nil {
		t.Fatalf("kv_store missing: %v", err)
	}
	_ = d.Close()

	// Reopening must not re-run applied migrations.
	d, err = Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()
	var again int
	if err := d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&again); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if again != n {
		t.Fatalf("migrations re-applied: before=%d after=%d", n, again)
	}
}

func TestRollbackLast_DropsKVStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollback.db")
	d, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if _, err := d.Exec(`SELECT 1 FROM kv_store`); err == nil {
		t.Fatalf("expected kv_store to be dropped")
	}
}
