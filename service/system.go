// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
	"github.com/prometheus/procfs"
)

const cpuSampleInterval = 250 * time.Millisecond

type SystemInfo struct {
	// Fraction of non idle CPU time across all cores, in [0, 1].
	CPULoad float64 `json:"cpu_load"`
}

func cpuTotal(st procfs.CPUStat) float64 {
	return st.User + st.Nice + st.System + st.Idle + st.Iowait + st.IRQ + st.SoftIRQ + st.Steal
}

func cpuLoad(st1, st2 procfs.CPUStat) float64 {
	total := cpuTotal(st2) - cpuTotal(st1)
	if total <= 0 {
		return 0
	}
	idle := (st2.Idle + st2.Iowait) - (st1.Idle + st1.Iowait)
	return min(1, max(0, 1-idle/total))
}

func (s *Service) getSystemInfo(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.NotFound(w, req)
		return
	}

	if s.proc == nil {
		http.Error(w, "system info not available", http.StatusNotImplemented)
		return
	}

	var info SystemInfo
	st1, err1 := s.proc.Stat()
	time.Sleep(cpuSampleInterval)
	st2, err2 := s.proc.Stat()
	if err1 == nil && err2 == nil {
		info.CPULoad = cpuLoad(st1.CPUTotal, st2.CPUTotal)
	} else {
		if err1 != nil {
			s.log.Error("failed to get cpu stat", mlog.Err(err1))
		}
		if err2 != nil {
			s.log.Error("failed to get cpu stat", mlog.Err(err2))
		}
	}

	w.Header().Add("Content-Type", contentTypeJSON)
	if err := json.NewEncoder(w).Encode(&info); err != nil {
		s.log.Error("failed to encode data", mlog.Err(err))
	}
}
