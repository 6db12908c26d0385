// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package logger

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

func TestGetLevels(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		levels := getLevels("")
		require.Equal(t, levels, mlog.StdAll)
	})

	t.Run("invalid input", func(t *testing.T) {
		levels := getLevels("invalid")
		require.Equal(t, levels, mlog.StdAll)
	})

	t.Run("debug", func(t *testing.T) {
		levels := getLevels("DEBUG")
		require.Equal(t, []mlog.Level{
			mlog.LvlPanic,
			mlog.LvlFatal,
			mlog.LvlError,
			mlog.LvlWarn,
			mlog.LvlInfo,
			mlog.LvlDebug,
		}, levels)
	})

	t.Run("info", func(t *testing.T) {
		levels := getLevels("INFO")
		require.Equal(t, []mlog.Level{
			mlog.LvlPanic,
			mlog.LvlFatal,
			mlog.LvlError,
			mlog.LvlWarn,
			mlog.LvlInfo,
		}, levels)
	})

	t.Run("error", func(t *testing.T) {
		levels := getLevels("ERROR")
		require.Equal(t, []mlog.Level{
			mlog.LvlPanic,
			mlog.LvlFatal,
			mlog.LvlError,
		}, levels)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("empty cfg", func(t *testing.T) {
		var cfg Config
		logger, err := New(cfg)
		require.Nil(t, logger)
		require.Error(t, err)
	})

	t.Run("invalid cfg", func(t *testing.T) {
		var cfg Config
		cfg.EnableConsole = true
		cfg.ConsoleLevel = "INVALID"
		logger, err := New(cfg)
		require.Nil(t, logger)
		require.Error(t, err)
		require.Equal(t, `invalid ConsoleLevel value "INVALID"`, err.Error())
	})

	t.Run("valid cfg", func(t *testing.T) {
		var cfg Config
		cfg.EnableConsole = true
		cfg.ConsoleLevel = "INFO"
		logger, err := New(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestTargets(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		target := consoleTarget(Config{ConsoleLevel: "INFO", ConsoleStderr: true})
		require.Equal(t, "console", target.Type)
		require.Equal(t, "plain", target.Format)
		require.JSONEq(t, `{"out": "stderr"}`, string(target.Options))
		require.Len(t, target.Levels, 5)

		target = consoleTarget(Config{ConsoleLevel: "INFO", ConsoleJSON: true})
		require.Equal(t, "json", target.Format)
		require.JSONEq(t, `{"out": "stdout"}`, string(target.Options))
	})

	t.Run("file", func(t *testing.T) {
		target, err := fileTarget(Config{FileLevel: "DEBUG", FileLocation: "spcd.log", FileJSON: true})
		require.NoError(t, err)
		require.Equal(t, "file", target.Type)
		require.Equal(t, "json", target.Format)

		var opts map[string]any
		require.NoError(t, json.Unmarshal(target.Options, &opts))
		require.Equal(t, "spcd.log", opts["filename"])
		require.Equal(t, float64(defaultFileMaxSizeMB), opts["max_size"])
		require.Equal(t, false, opts["compress"])

		target, err = fileTarget(Config{FileLevel: "DEBUG", FileLocation: "spcd.log", FileMaxSizeMB: 5, FileCompress: true})
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(target.Options, &opts))
		require.Equal(t, 5.0, opts["max_size"])
		require.Equal(t, true, opts["compress"])
	})

	t.Run("file logger", func(t *testing.T) {
		logger, err := New(Config{
			EnableFile:   true,
			FileLevel:    "DEBUG",
			FileLocation: filepath.Join(t.TempDir(), "spcd.log"),
		})
		require.NoError(t, err)
		require.NotNil(t, logger)
		require.NoError(t, logger.Shutdown())
	})
}
