// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/go-chi/chi/v5"
)

// Every handler below runs behind federationAuth, which stores the
// authenticated peer domain in the request context.

func (h *Handler) receiveAnnouncement(w http.ResponseWriter, r *http.Request) {
	peerDomain, _ := utils.GetPeerDomainFromContext(r.Context())

	announcement, err := decodeJSON[models.Announcement](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transfer, err := h.services.FederationService.ReceiveAnnouncement(r.Context(), peerDomain, announcement)
	if err != nil {
		writeError(w, r, err, "announcement rejected")
		return
	}

	utils.WriteJSON(w, map[string]string{"id": transfer.ID}, http.StatusCreated)
}

func (h *Handler) listChunksForPeer(w http.ResponseWriter, r *http.Request) {
	peerDomain, _ := utils.GetPeerDomainFromContext(r.Context())
	transferID := chi.URLParam(r, "id")

	indices, err := h.services.FederationService.ListChunksForPeer(r.Context(), peerDomain, transferID)
	if err != nil {
		writeError(w, r, err, "error listing chunks for peer")
		return
	}

	writeChunkList(w, transferID, indices)
}

func (h *Handler) getChunkForPeer(w http.ResponseWriter, r *http.Request) {
	peerDomain, _ := utils.GetPeerDomainFromContext(r.Context())

	index, err := chunkIndexParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chunk, err := h.services.FederationService.GetChunkForPeer(r.Context(), peerDomain, chi.URLParam(r, "id"), index)
	if err != nil {
		writeError(w, r, err, "error reading chunk for peer")
		return
	}

	utils.WriteJSON(w, chunk, http.StatusOK)
}

func (h *Handler) receiveStatus(w http.ResponseWriter, r *http.Request) {
	peerDomain, _ := utils.GetPeerDomainFromContext(r.Context())

	notification, err := decodeJSON[models.StatusNotification](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.services.FederationService.ReceiveStatus(r.Context(), peerDomain, chi.URLParam(r, "id"), notification.Status); err != nil {
		writeError(w, r, err, "status notification rejected")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getPublicKeyForPeer(w http.ResponseWriter, r *http.Request) {
	key, err := h.services.KeyService.GetLocalPublicKey(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		writeError(w, r, err, "error reading public key for peer")
		return
	}

	utils.WriteJSON(w, key, http.StatusOK)
}
