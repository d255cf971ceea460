// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/go-chi/chi/v5"
)

func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return v, nil
}

// userIDFrom returns the user id stored by the auth middleware. It writes
// the error response itself when the id is missing.
func userIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg(ErrNoUserID.Error())
		http.Error(w, ErrNoUserID.Error(), http.StatusUnauthorized)
	}
	return userID, ok
}

func chunkIndexParam(r *http.Request) (uint32, error) {
	index, err := strconv.ParseUint(chi.URLParam(r, "index"), 10, 32)
	if err != nil {
		return 0, ErrInvalidChunkIndex
	}
	return uint32(index), nil
}
