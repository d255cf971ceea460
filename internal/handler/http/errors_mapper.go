// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/service"
	"github.com/MKhiriev/go-file-courier/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidChunk:            http.StatusBadRequest,
	service.ErrSizeExceeded:            http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrDomainMismatch:          http.StatusForbidden,
	service.ErrTransferNotFound:        http.StatusNotFound,
	service.ErrRecipientNotFound:       http.StatusNotFound,
	service.ErrKeysNotRegistered:       http.StatusNotFound,
	service.ErrInvalidTransition:       http.StatusConflict,
	service.ErrChunkNotAvailable:       http.StatusConflict,
	service.ErrTransferUnavailable:     http.StatusServiceUnavailable,

	store.ErrLoginAlreadyExists:    http.StatusConflict,
	store.ErrTransferAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrChunkNotFound:         http.StatusNotFound,
}

// errorMessages are the fixed response bodies of mapped errors. Statuses
// without an entry answer with their status text; only validation errors
// carry the error itself.
var errorMessages = map[int]string{
	http.StatusServiceUnavailable: "transfer temporarily unavailable",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the status mapped from it. Storage
// and unexpected failures never reach the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}

	body, ok := errorMessages[status]
	switch {
	case status == http.StatusBadRequest:
		body = err.Error()
	case !ok:
		body = http.StatusText(status)
	}
	http.Error(w, body, status)
}
