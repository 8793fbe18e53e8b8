package auth

import (
	"context"
	"testing"
	"time"

	"entregador/internal/testutil"
	"entregador/models"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	u := models.User{ID: "u1", Name: "João Silva"}
	tok, err := IssueToken(testSecret, u, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	p, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if p.Subject != "u1" || p.Name != "João Silva" || p.Kind != KindDriver {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", "driver", time.Time{})
	if _, err := ParseToken(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
	if _, err := ParseToken(tok, ""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", "driver", time.Now().Add(-time.Minute))
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseToken_ClaimsValidation(t *testing.T) {
	// Missing name/kind -> invalid
	tok := testutil.GenerateJWTHS256(t, testSecret, "", "", time.Time{})
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
}

func TestRequireDriver(t *testing.T) {
	if _, err := RequireDriver(context.Background()); err != ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	ctx := WithPrincipal(context.Background(), &Principal{Name: "d1", Kind: "admin"})
	if _, err := RequireDriver(ctx); err == nil {
		t.Fatalf("expected rejection for non-driver")
	}
	ctx = WithPrincipal(context.Background(), &Principal{Name: "d1", Kind: KindDriver})
	if _, err := RequireDriver(ctx); err != nil {
		t.Fatalf("RequireDriver: %v", err)
	}
}
