// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent identifies the client and server adapters on the wire.
const UserAgent = "file-courier/1"

// HTTPClient embeds *resty.Client. Every instance has its own connection
// pool.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client with the given per-request timeout.
// A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
