// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
	requestIDHeader    = "X-Request-Id"
)

func isMsgpack(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == contentTypeMsgpack
}

// acceptsMsgpack reports whether the client listed msgpack among the
// accepted response types.
func acceptsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		if isMsgpack(strings.TrimSpace(part)) {
			return true
		}
	}
	return false
}

func contentType(asMsgpack bool) string {
	if asMsgpack {
		return contentTypeMsgpack
	}
	return contentTypeJSON
}

// Struct fields are named after their json tags in both encodings.
func encodeBody(w io.Writer, asMsgpack bool, v any) error {
	if asMsgpack {
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(v)
	}
	return json.NewEncoder(w).Encode(v)
}

func decodeBody(r io.Reader, asMsgpack bool, v any) error {
	if asMsgpack {
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		return dec.Decode(v)
	}
	return json.NewDecoder(r).Decode(v)
}
