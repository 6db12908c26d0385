// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"net/http"
	"runtime"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

// Set at build time through -ldflags.
var (
	buildVersion string
	buildHash    string
	buildDate    string
)

// LimitsInfo tells clients how large a single request can be.
type LimitsInfo struct {
	MaxSamples  int   `json:"maxSamples"`
	MaxBins     int   `json:"maxBins"`
	MaxBodySize int64 `json:"maxBodySize"`
}

type VersionInfo struct {
	BuildDate    string      `json:"buildDate"`
	BuildVersion string      `json:"buildVersion"`
	BuildHash    string      `json:"buildHash"`
	GoVersion    string      `json:"goVersion"`
	GoOS         string      `json:"goOS"`
	GoArch       string      `json:"goArch"`
	Limits       *LimitsInfo `json:"limits,omitempty"`
}

func getVersionInfo() VersionInfo {
	return VersionInfo{
		BuildDate:    buildDate,
		BuildVersion: buildVersion,
		BuildHash:    buildHash,
		GoVersion:    runtime.Version(),
		GoOS:         runtime.GOOS,
		GoArch:       runtime.GOARCH,
	}
}

func (v VersionInfo) logFields() []mlog.Field {
	fields := []mlog.Field{
		mlog.String("buildDate", v.BuildDate),
		mlog.String("buildVersion", v.BuildVersion),
		mlog.String("buildHash", v.BuildHash),
		mlog.String("goVersion", v.GoVersion),
		mlog.String("goOS", v.GoOS),
		mlog.String("goArch", v.GoArch),
	}
	if v.Limits != nil {
		fields = append(fields,
			mlog.Int("maxSamples", v.Limits.MaxSamples),
			mlog.Int("maxBins", v.Limits.MaxBins),
			mlog.Int("maxBodySize", v.Limits.MaxBodySize),
		)
	}
	return fields
}

func (s *Service) versionInfo() VersionInfo {
	info := getVersionInfo()
	info.Limits = &LimitsInfo{
		MaxSamples:  s.cfg.Stats.MaxSamples,
		MaxBins:     s.cfg.Stats.MaxBins,
		MaxBodySize: s.cfg.API.HTTP.MaxBodySize,
	}
	return info
}

func (s *Service) getVersion(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.NotFound(w, req)
		return
	}

	asMsgpack := acceptsMsgpack(req)
	w.Header().Set("Content-Type", contentType(asMsgpack))
	if err := encodeBody(w, asMsgpack, s.versionInfo()); err != nil {
		s.log.Error("failed to encode data", mlog.Err(err))
	}
}
