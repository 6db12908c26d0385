// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package random

import (
	"bytes"
	"encoding/base32"
	"strings"

	"github.com/pborman/uuid"
)

const (
	charset = "ybndrfg8ejkmcpqxot1uwisza345h769"
	idLen   = 26
)

var encoding = base32.NewEncoding(charset)

// NewID returns a request identifier: a random UUID zbase32 encoded
// without padding, 26 characters long.
func NewID() string {
	var b bytes.Buffer
	encoder := base32.NewEncoder(encoding, &b)
	if _, err := encoder.Write(uuid.NewRandom()); err != nil {
		return ""
	}
	encoder.Close()
	b.Truncate(idLen)
	return b.String()
}

// IsValidID reports whether id has the shape of an identifier returned by
// NewID.
func IsValidID(id string) bool {
	if len(id) != idLen {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune(charset, c) {
			return false
		}
	}
	return true
}
