// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"fmt"
	"net/http"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

// authHandler verifies the request's basic auth credentials and returns the
// client id they carry. It's a no-op when authentication is disabled.
func (s *Service) authHandler(r *http.Request) (string, error) {
	clientID, authKey, ok := r.BasicAuth()
	if s.auth == nil {
		return clientID, nil
	}

	if !ok {
		return "", fmt.Errorf("%w: invalid auth header", errUnauthorized)
	}

	if err := s.auth.Authenticate(clientID, authKey); err != nil {
		s.log.Debug("authentication failed", mlog.String("clientID", clientID), mlog.Err(err))
		return "", fmt.Errorf("%w: authentication failed", errUnauthorized)
	}

	return clientID, nil
}
