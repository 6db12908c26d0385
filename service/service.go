// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"fmt"
	"net/http"

	"github.com/mattermost/spcd/logger"
	"github.com/mattermost/spcd/service/api"
	"github.com/mattermost/spcd/service/auth"
	"github.com/mattermost/spcd/service/perf"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
	"github.com/prometheus/procfs"
)

type Service struct {
	cfg       Config
	apiServer *api.Server
	auth      *auth.Service
	metrics   *perf.Metrics
	proc      *procfs.FS
	log       *mlog.Logger
}

func New(cfg Config) (*Service, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	s := &Service{
		log:     log,
		metrics: perf.NewMetrics("spcd", nil),
	}

	if cfg.API.Security.EnableAuth {
		s.auth, err = auth.NewService(cfg.API.Security.SecretKey, cfg.API.Security.SessionCache)
		if err != nil {
			return nil, fmt.Errorf("failed to create auth service: %w", err)
		}
		// Only the hash is needed from now on.
		cfg.API.Security.SecretKey = ""
	}
	s.cfg = cfg

	if fs, err := procfs.NewDefaultFS(); err != nil {
		s.log.Warn("failed to open procfs, system info won't be available", mlog.Err(err))
	} else {
		s.proc = &fs
	}

	s.apiServer, err = api.NewServer(cfg.API.HTTP, log, api.WithRateLimitedCb(func(_ *http.Request) {
		s.metrics.IncAPIRateLimited()
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create api server: %w", err)
	}

	s.apiServer.RegisterHandleFunc("/version", s.getVersion)
	s.apiServer.RegisterHandleFunc("/system", s.getSystemInfo)
	s.apiServer.RegisterHandler("/metrics", s.metrics.Handler())
	s.apiServer.RegisterHandleFunc("/describe", statHandler(s, "describe", s.describe))
	s.apiServer.RegisterHandleFunc("/histogram", statHandler(s, "histogram", s.histogram))
	s.apiServer.RegisterHandleFunc("/quantile", statHandler(s, "quantile", s.quantile))
	s.apiServer.RegisterHandleFunc("/zscore", statHandler(s, "zscore", s.zscore))
	s.apiServer.RegisterHandleFunc("/trim", statHandler(s, "trim", s.trim))
	s.apiServer.RegisterHandleFunc("/capability", statHandler(s, "capability", s.capability))
	s.apiServer.RegisterHandleFunc("/shape", statHandler(s, "shape", s.shape))
	s.apiServer.RegisterHandleFunc("/summary", statHandler(s, "summary", s.summary))

	return s, nil
}

func (s *Service) Start() error {
	s.log.Info("spcd: starting service", s.versionInfo().logFields()...)

	if err := s.apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	return nil
}

func (s *Service) Stop() error {
	if err := s.apiServer.Stop(); err != nil {
		return fmt.Errorf("failed to stop API server: %w", err)
	}

	if err := s.log.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown logger: %w", err)
	}

	return nil
}
