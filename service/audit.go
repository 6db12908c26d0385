// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"errors"
	"net/http"

	"github.com/mattermost/spcd/service/random"
	"github.com/mattermost/spcd/service/stat"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

type httpData struct {
	err       error
	code      int
	requestID string
	clientID  string
	res       any
}

// newHTTPData keeps the caller's request id when it's well formed so that
// logs can be correlated across services.
func newHTTPData(r *http.Request) *httpData {
	requestID := r.Header.Get(requestIDHeader)
	if !random.IsValidID(requestID) {
		requestID = random.NewID()
	}
	return &httpData{
		requestID: requestID,
	}
}

func (d *httpData) fail(err error) {
	d.err = err
	d.code = errorCode(err)
}

func (s *Service) httpAudit(handler string, data *httpData, w http.ResponseWriter, r *http.Request) {
	fields := append(reqAuditFields(r),
		mlog.Int("code", data.code),
		mlog.String("requestID", data.requestID),
	)
	status := "fail"
	if data.err == nil {
		status = "success"
	} else {
		fields = append(fields, mlog.Err(data.err))
	}
	if data.clientID != "" {
		fields = append(fields, mlog.String("clientID", data.clientID))
	}
	s.log.Debug(handler, append(fields, mlog.String("status", status))...)
	s.metrics.IncAPIRequests(handler, data.code)

	if w == nil {
		return
	}

	asMsgpack := acceptsMsgpack(r)
	payload := data.res
	if data.err != nil {
		payload = ErrorResponse{
			Error:     data.err.Error(),
			Code:      data.code,
			RequestID: data.requestID,
		}
	}

	w.Header().Set(requestIDHeader, data.requestID)
	w.Header().Set("Content-Type", contentType(asMsgpack))
	w.WriteHeader(data.code)
	if err := encodeBody(w, asMsgpack, payload); err != nil {
		s.log.Error("failed to encode data", mlog.Err(err), mlog.String("requestID", data.requestID))
	}
}

func reqAuditFields(req *http.Request) []mlog.Field {
	delete(req.Header, "Authorization")
	fields := []mlog.Field{
		mlog.String("remoteAddr", req.RemoteAddr),
		mlog.String("method", req.Method),
		mlog.String("url", req.URL.String()),
		mlog.Any("header", req.Header),
		mlog.String("host", req.Host),
	}
	return fields
}

var (
	errBadRequest     = errors.New("bad request")
	errUnauthorized   = errors.New("unauthorized")
	errTooManySamples = errors.New("too many samples")
)

func errorCode(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &maxBytesErr), errors.Is(err, errTooManySamples):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errBadRequest), errors.Is(err, stat.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		// Includes stat.ErrAlgorithmicGap, which flags a defect.
		return http.StatusInternalServerError
	}
}
