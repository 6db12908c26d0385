// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package auth

import (
	"fmt"
)

// Service authenticates API clients against a single shared secret key.
// Only the bcrypt hash of the key is kept in memory.
type Service struct {
	hash  string
	cache *SessionCache
}

func NewService(secretKey string, cacheCfg SessionCacheConfig) (*Service, error) {
	if len(secretKey) < MinKeyLen {
		return nil, fmt.Errorf("invalid secret key: should be at least %d characters long", MinKeyLen)
	}

	hash, err := hashKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash key: %w", err)
	}

	cache, err := NewSessionCache(cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Service{
		hash:  hash,
		cache: cache,
	}, nil
}

func (s *Service) Authenticate(clientID, key string) error {
	if clientID == "" {
		return fmt.Errorf("authentication failed: empty client id")
	}

	if _, err := s.cache.Get(clientID, key); err == nil {
		return nil
	}

	if err := compareKeyHash(s.hash, key); err != nil {
		return fmt.Errorf("authentication failed")
	}

	if err := s.cache.Put(clientID, key); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	return nil
}
