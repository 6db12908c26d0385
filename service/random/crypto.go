// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewSecureString returns a URL safe random string of the given length,
// carrying (6 * length) bits of entropy. It's what secret keys are made of.
func NewSecureString(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("invalid length %d: should not be negative", length)
	}

	data := make([]byte, 1+(length*4)/3)
	if _, err := rand.Read(data); err != nil {
		return "", fmt.Errorf("failed to read random data: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data)[:length], nil
}
