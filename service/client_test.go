// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"context"
	"net"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientConfigParse(t *testing.T) {
	t.Run("empty struct", func(t *testing.T) {
		var cfg ClientConfig
		err := cfg.Parse()
		require.Error(t, err)
		require.Equal(t, "invalid URL value: should not be empty", err.Error())
	})

	t.Run("invalid URL", func(t *testing.T) {
		var cfg ClientConfig
		cfg.URL = "//sd"
		err := cfg.Parse()
		require.Error(t, err)
		require.Equal(t, `invalid url scheme: "" is not valid`, err.Error())
	})

	t.Run("missing host", func(t *testing.T) {
		var cfg ClientConfig
		cfg.URL = "https:///test"
		err := cfg.Parse()
		require.Error(t, err)
		require.Equal(t, "invalid url host: should not be empty", err.Error())
	})

	t.Run("trailing slash", func(t *testing.T) {
		var cfg ClientConfig
		cfg.URL = "https://spcd.example.com/"
		err := cfg.Parse()
		require.NoError(t, err)
		require.Equal(t, "https://spcd.example.com", cfg.httpURL)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		c, err := NewClient(ClientConfig{})
		require.Error(t, err)
		require.Equal(t, "failed to parse config: invalid URL value: should not be empty", err.Error())
		require.Nil(t, c)
	})

	t.Run("invalid url", func(t *testing.T) {
		c, err := NewClient(ClientConfig{URL: "not_a_url"})
		require.Error(t, err)
		require.Equal(t, "failed to parse config: invalid url host: should not be empty", err.Error())
		require.Nil(t, c)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		c, err := NewClient(ClientConfig{URL: "ftp://invalid"})
		require.Error(t, err)
		require.Equal(t, `failed to parse config: invalid url scheme: "ftp" is not valid`, err.Error())
		require.Nil(t, c)
	})

	t.Run("success", func(t *testing.T) {
		apiURL := "http://localhost"
		c, err := NewClient(ClientConfig{URL: apiURL}, WithTimeout(time.Second))
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Equal(t, apiURL, c.cfg.httpURL)
		require.Equal(t, time.Second, c.httpClient.Timeout)
		require.NoError(t, c.Close())
	})
}

func TestClientDialFunc(t *testing.T) {
	th := SetupTestHelper(t, nil)
	defer th.Teardown()

	var called atomic.Bool
	dialFn := func(ctx context.Context, network, addr string) (net.Conn, error) {
		called.Store(true)
		return (&net.Dialer{}).DialContext(ctx, network, addr)
	}

	c, err := NewClient(ClientConfig{URL: th.apiURL}, WithDialFunc(dialFn))
	require.NoError(t, err)
	defer c.Close()

	info, err := c.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, runtime.Version(), info.GoVersion)
	require.True(t, called.Load())
}

func TestClientCanceledContext(t *testing.T) {
	th := SetupTestHelper(t, nil)
	defer th.Teardown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := th.client.Summary(ctx, SummaryRequest{SamplesRequest: samplesReq(1, 2, 3)})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
