// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) putKeys(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	req, err := decodeJSON[models.KeysRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.KeyService.SetKeys(r.Context(), userID, req); err != nil {
		writeError(w, r, err, "error storing keys")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOwnKeys(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	keys, err := h.services.KeyService.GetOwnKeys(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error reading own keys")
		return
	}

	utils.WriteJSON(w, keys, http.StatusOK)
}

// getPublicKey returns the public key of any federated address; remote
// addresses are looked up on their server.
func (h *Handler) getPublicKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.services.KeyService.GetPublicKey(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, r, err, "error reading public key")
		return
	}

	utils.WriteJSON(w, key, http.StatusOK)
}
