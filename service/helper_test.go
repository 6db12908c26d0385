// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"net"
	"testing"

	"github.com/mattermost/spcd/logger"
	"github.com/mattermost/spcd/service/api"

	"github.com/stretchr/testify/require"
)

const testSecretKey = "Ey4-H_BJA00_TVByPi8DozE12ekN3S7L"

type TestHelper struct {
	srvc   *Service
	client *Client
	cfg    Config
	tb     testing.TB
	apiURL string
}

func defaultTestConfig() Config {
	return Config{
		API: APIConfig{
			HTTP: api.Config{
				ListenAddress: ":0",
			},
		},
		Stats: StatsConfig{
			MaxSamples: 10_000,
			MaxBins:    100,
		},
		Logger: logger.Config{
			EnableConsole: true,
			ConsoleLevel:  "ERROR",
		},
	}
}

// SetupTestHelper starts a service listening on a random port. A nil cfg
// selects defaultTestConfig.
func SetupTestHelper(tb testing.TB, cfg *Config) *TestHelper {
	tb.Helper()
	var err error

	th := &TestHelper{
		cfg: defaultTestConfig(),
		tb:  tb,
	}
	if cfg != nil {
		th.cfg = *cfg
	}

	th.srvc, err = New(th.cfg)
	require.NoError(th.tb, err)
	require.NotNil(th.tb, th.srvc)

	err = th.srvc.Start()
	require.NoError(th.tb, err)

	_, port, err := net.SplitHostPort(th.srvc.apiServer.Addr())
	require.NoError(th.tb, err)
	th.apiURL = "http://localhost:" + port

	th.client = th.newClient(false)

	return th
}

func (th *TestHelper) newClient(asMsgpack bool) *Client {
	th.tb.Helper()
	client, err := NewClient(ClientConfig{
		URL:      th.apiURL,
		ClientID: "producer",
		AuthKey:  th.cfg.API.Security.SecretKey,
		Msgpack:  asMsgpack,
	})
	require.NoError(th.tb, err)
	require.NotNil(th.tb, client)
	return client
}

func (th *TestHelper) Teardown() {
	err := th.client.Close()
	require.NoError(th.tb, err)

	err = th.srvc.Stop()
	require.NoError(th.tb, err)
}
