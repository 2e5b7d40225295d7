// Package session implements the server-side login session store backed
// by the sessions table
package session

import (
	"errors"
	"time"

	"webmail/backend/model"
	"webmail/backend/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CookieName is the cookie the opaque session token travels in
const CookieName = "session_id"

var ErrNoSession = errors.New("no active session")

type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// TTL returns the configured session lifetime
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create opens a new session for userID and returns the opaque token
func (s *Store) Create(userID string) (string, error) {
	token, err := util.GenerateToken(32)
	if err != nil {
		return "", err
	}

	err = s.db.Create(&model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}).Error
	if err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the user id a session token belongs to. Expired
// sessions resolve to ErrNoSession just like unknown ones.
func (s *Store) Resolve(token string) (string, error) {
	var sess model.Session

	err := s.db.Where("token = ?", token).First(&sess).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrNoSession
		}

		return "", err
	}

	if time.Now().After(sess.ExpiresAt) {
		return "", ErrNoSession
	}

	return sess.UserID, nil
}

// Delete terminates a session. Deleting an unknown token is a no-op.
func (s *Store) Delete(token string) error {
	return s.db.Where("token = ?", token).Delete(model.Session{}).Error
}

// StartCleanup periodically removes expired session rows
func (s *Store) StartCleanup(t time.Duration) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Session cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			err := s.db.
				Where("expires_at < ?", time.Now()).
				Delete(model.Session{}).
				Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired sessions", zap.Error(err))
			}
		}
	}()
}
