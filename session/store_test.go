package session

import (
	"fmt"
	"testing"
	"time"

	"webmail/backend/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	// A named shared-cache database so every pooled connection sees the
	// same schema, unlike a plain :memory: DSN
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := db.AutoMigrate(model.Session{}); err != nil {
		t.Fatalf("migrating sessions table: %v", err)
	}

	return NewStore(db, ttl)
}

func TestCreateAndResolve(t *testing.T) {
	s := newTestStore(t, time.Hour)

	token, err := s.Create("usr_1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if token == "" {
		t.Fatal("empty session token")
	}

	userID, err := s.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if userID != "usr_1" {
		t.Errorf("got user id %q, want usr_1", userID)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	s := newTestStore(t, time.Hour)

	if _, err := s.Resolve("nonexistent"); err != ErrNoSession {
		t.Errorf("got %v, want ErrNoSession", err)
	}
}

func TestExpiredSession(t *testing.T) {
	// Negative TTL makes every session born expired
	s := newTestStore(t, -time.Minute)

	token, err := s.Create("usr_1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Resolve(token); err != ErrNoSession {
		t.Errorf("got %v, want ErrNoSession", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, time.Hour)

	token, err := s.Create("usr_1")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(token); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Resolve(token); err != ErrNoSession {
		t.Errorf("got %v, want ErrNoSession", err)
	}

	// Deleting again shouldn't error
	if err := s.Delete(token); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := newTestStore(t, time.Hour)

	seen := make(map[string]bool)
	for range 10 {
		token, err := s.Create("usr_1")
		if err != nil {
			t.Fatal(err)
		}
		if seen[token] {
			t.Fatal("duplicate session token")
		}
		seen[token] = true
	}
}
