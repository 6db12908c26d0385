// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSessionCache(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		tc, err := NewSessionCache(SessionCacheConfig{})
		require.Error(t, err)
		require.Equal(t, "invalid ExpirationMinutes value: should be a positive number", err.Error())
		require.Nil(t, tc)
	})

	t.Run("negative expiration minutes", func(t *testing.T) {
		tc, err := NewSessionCache(SessionCacheConfig{ExpirationMinutes: -1})
		require.Error(t, err)
		require.Equal(t, "invalid ExpirationMinutes value: should be a positive number", err.Error())
		require.Nil(t, tc)
	})

	t.Run("success", func(t *testing.T) {
		tc, err := NewSessionCache(SessionCacheConfig{ExpirationMinutes: 1440})
		require.NoError(t, err)
		require.NotNil(t, tc)
		require.Equal(t, tc.sessionMap, map[string]CachedSession{})
	})
}

func TestSessionCacheGet(t *testing.T) {
	tc, err := NewSessionCache(SessionCacheConfig{ExpirationMinutes: 1440})
	require.NoError(t, err)

	t.Run("unknown client", func(t *testing.T) {
		session, err := tc.Get("foo", "key")
		require.Error(t, err)
		require.Equal(t, "session is invalid", err.Error())
		require.Empty(t, session)
	})

	t.Run("key mismatch", func(t *testing.T) {
		tc.sessionMap = map[string]CachedSession{"foo": {ClientID: "foo", Key: "key", ExpirationDate: time.Now().Add(10 * time.Minute)}}
		session, err := tc.Get("foo", "other")
		require.Error(t, err)
		require.Equal(t, "session is invalid", err.Error())
		require.Empty(t, session)
	})

	t.Run("session is expired", func(t *testing.T) {
		tc.sessionMap = map[string]CachedSession{"foo": {ClientID: "foo", Key: "key", ExpirationDate: time.Now().Add(-10 * time.Minute)}}
		session, err := tc.Get("foo", "key")
		require.Error(t, err)
		require.Equal(t, "session is expired", err.Error())
		require.Empty(t, session)
		require.Zero(t, tc.Len())
	})

	t.Run("valid session returned", func(t *testing.T) {
		expirationDate := time.Now().Add(10 * time.Minute)
		tc.sessionMap = map[string]CachedSession{"foo": {ClientID: "foo", Key: "key", ExpirationDate: expirationDate}}
		session, err := tc.Get("foo", "key")
		require.NoError(t, err)
		require.Equal(t, CachedSession{ClientID: "foo", Key: "key", ExpirationDate: expirationDate}, session)
	})
}

func TestSessionCachePut(t *testing.T) {
	tc, err := NewSessionCache(SessionCacheConfig{ExpirationMinutes: 1440})
	require.NoError(t, err)

	t.Run("invalid client id", func(t *testing.T) {
		err := tc.Put("", "key")
		require.EqualError(t, err, "can not cache: invalid client id")
	})

	t.Run("invalid key", func(t *testing.T) {
		err := tc.Put("foo", "")
		require.EqualError(t, err, "can not cache: invalid key")
	})

	t.Run("replaces previous key", func(t *testing.T) {
		require.NoError(t, tc.Put("foo", "key1"))
		require.NoError(t, tc.Put("foo", "key2"))
		require.Equal(t, 1, tc.Len())

		_, err := tc.Get("foo", "key1")
		require.Error(t, err)
		session, err := tc.Get("foo", "key2")
		require.NoError(t, err)
		require.Equal(t, "foo", session.ClientID)
		require.WithinDuration(t, time.Now().Add(1440*time.Minute), session.ExpirationDate, time.Minute)
	})

	t.Run("shared key across clients", func(t *testing.T) {
		require.NoError(t, tc.Put("bar", "key2"))
		require.Equal(t, 2, tc.Len())
	})

	t.Run("delete", func(t *testing.T) {
		tc.Delete("foo")
		tc.Delete("bar")
		tc.Delete("unknown")
		require.Zero(t, tc.Len())
	})
}
