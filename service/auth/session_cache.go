// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"
)

type CachedSession struct {
	ClientID       string
	Key            string
	ExpirationDate time.Time
}

type SessionCacheConfig struct {
	ExpirationMinutes int `toml:"expiration_minutes" split_words:"true"`
}

func (c SessionCacheConfig) IsValid() error {
	if c.ExpirationMinutes <= 0 {
		return errors.New("invalid ExpirationMinutes value: should be a positive number")
	}
	return nil
}

// SessionCache remembers keys that were successfully verified so that the
// expensive hash comparison runs at most once per client and expiration
// period.
type SessionCache struct {
	cfg        SessionCacheConfig
	sessionMap map[string]CachedSession

	mut sync.RWMutex
}

func NewSessionCache(cfg SessionCacheConfig) (*SessionCache, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, err
	}
	return &SessionCache{cfg: cfg, sessionMap: make(map[string]CachedSession)}, nil
}

func (t *SessionCache) Get(clientID, key string) (CachedSession, error) {
	t.mut.RLock()
	session, ok := t.sessionMap[clientID]
	t.mut.RUnlock()
	if !ok || subtle.ConstantTimeCompare([]byte(session.Key), []byte(key)) != 1 {
		return CachedSession{}, errors.New("session is invalid")
	}
	if time.Now().After(session.ExpirationDate) {
		t.Delete(clientID)
		return CachedSession{}, errors.New("session is expired")
	}
	return session, nil
}

func (t *SessionCache) Put(clientID, key string) error {
	if len(clientID) == 0 {
		return errors.New("can not cache: invalid client id")
	}
	if len(key) == 0 {
		return errors.New("can not cache: invalid key")
	}

	t.mut.Lock()
	defer t.mut.Unlock()

	// Only one cached key per client.
	t.sessionMap[clientID] = CachedSession{
		ClientID:       clientID,
		Key:            key,
		ExpirationDate: time.Now().Add(time.Duration(t.cfg.ExpirationMinutes) * time.Minute),
	}
	return nil
}

func (t *SessionCache) Delete(clientID string) {
	t.mut.Lock()
	delete(t.sessionMap, clientID)
	t.mut.Unlock()
}

func (t *SessionCache) Len() int {
	t.mut.RLock()
	defer t.mut.RUnlock()
	return len(t.sessionMap)
}
