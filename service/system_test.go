// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"encoding/json"
	"net/http"
	"runtime"
	"testing"

	"github.com/prometheus/procfs"
	"github.com/stretchr/testify/require"
)

func TestCPULoad(t *testing.T) {
	st1 := procfs.CPUStat{User: 10, System: 10, Idle: 80}

	t.Run("no elapsed time", func(t *testing.T) {
		require.Zero(t, cpuLoad(st1, st1))
	})

	t.Run("half busy", func(t *testing.T) {
		st2 := procfs.CPUStat{User: 20, System: 20, Idle: 100}
		require.Equal(t, 0.5, cpuLoad(st1, st2))
	})

	t.Run("iowait counts as idle", func(t *testing.T) {
		st2 := procfs.CPUStat{User: 10, System: 10, Idle: 90, Iowait: 10}
		require.Zero(t, cpuLoad(st1, st2))
	})
}

func TestGetSystem(t *testing.T) {
	th := SetupTestHelper(t, nil)
	defer th.Teardown()

	t.Run("invalid method", func(t *testing.T) {
		resp, err := http.Post(th.apiURL+"/system", "", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("valid response", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("procfs is only available on linux")
		}
		resp, err := http.Get(th.apiURL + "/system")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()
		var info SystemInfo
		err = json.NewDecoder(resp.Body).Decode(&info)
		require.NoError(t, err)
		require.GreaterOrEqual(t, info.CPULoad, 0.0)
		require.LessOrEqual(t, info.CPULoad, 1.0)
	})
}
