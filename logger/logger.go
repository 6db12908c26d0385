// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package logger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

const (
	defaultFileMaxSizeMB = 100
	targetQueueSize      = 1000
)

func getLevels(level string) []mlog.Level {
	var levels []mlog.Level
	for _, l := range mlog.StdAll {
		levels = append(levels, l)
		if l.Name == strings.ToLower(level) {
			break
		}
	}
	return levels
}

func targetFormat(asJSON, color bool) (string, json.RawMessage) {
	if asJSON {
		return "json", json.RawMessage(`{"enable_caller": true}`)
	}
	return "plain", json.RawMessage(fmt.Sprintf(`{"delim": " ", "min_level_len": 5, "min_msg_len": 45, "enable_color": %t, "enable_caller": true}`, color))
}

func consoleTarget(config Config) mlog.TargetCfg {
	out := "stdout"
	if config.ConsoleStderr {
		out = "stderr"
	}
	format, formatOpts := targetFormat(config.ConsoleJSON, config.EnableColor)
	return mlog.TargetCfg{
		Type:          "console",
		Levels:        getLevels(config.ConsoleLevel),
		Options:       json.RawMessage(fmt.Sprintf(`{"out": %q}`, out)),
		Format:        format,
		FormatOptions: formatOpts,
		MaxQueueSize:  targetQueueSize,
	}
}

func fileTarget(config Config) (mlog.TargetCfg, error) {
	maxSize := config.FileMaxSizeMB
	if maxSize == 0 {
		maxSize = defaultFileMaxSizeMB
	}
	opts, err := json.Marshal(map[string]any{
		"filename":    config.FileLocation,
		"max_size":    maxSize,
		"max_age":     0,
		"max_backups": 0,
		"compress":    config.FileCompress,
	})
	if err != nil {
		return mlog.TargetCfg{}, fmt.Errorf("failed to marshal file options: %w", err)
	}
	format, formatOpts := targetFormat(config.FileJSON, false)
	return mlog.TargetCfg{
		Type:          "file",
		Levels:        getLevels(config.FileLevel),
		Options:       opts,
		Format:        format,
		FormatOptions: formatOpts,
		MaxQueueSize:  targetQueueSize,
	}, nil
}

// New returns a newly created and initialized logger with the given cfg.
func New(config Config) (*mlog.Logger, error) {
	if err := config.IsValid(); err != nil {
		return nil, err
	}

	cfg := mlog.LoggerConfiguration{}
	if config.EnableConsole {
		cfg["_defConsole"] = consoleTarget(config)
	}
	if config.EnableFile {
		target, err := fileTarget(config)
		if err != nil {
			return nil, err
		}
		cfg["_defFile"] = target
	}

	logger, err := mlog.NewLogger()
	if err != nil {
		return nil, err
	}
	if err := logger.ConfigureTargets(cfg, nil); err != nil {
		return nil, err
	}

	return logger, nil
}
