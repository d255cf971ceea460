// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	req, err := decodeJSON[models.CreateTransferRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transfer, err := h.services.TransferService.CreateTransfer(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err, "error creating transfer")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusCreated)
}

func (h *Handler) listTransfers(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var (
		transfers []models.Transfer
		err       error
	)
	switch models.Mailbox(r.URL.Query().Get("box")) {
	case models.Inbox, "":
		transfers, err = h.services.TransferService.ListInbox(r.Context(), userID)
	case models.Outbox:
		transfers, err = h.services.TransferService.ListOutbox(r.Context(), userID)
	default:
		http.Error(w, ErrInvalidMailbox.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, r, err, "error listing transfers")
		return
	}

	if transfers == nil {
		transfers = []models.Transfer{}
	}
	utils.WriteJSON(w, transfers, http.StatusOK)
}

func (h *Handler) getTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	transfer, err := h.services.TransferService.GetTransfer(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error reading transfer")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusOK)
}

func (h *Handler) deleteTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	transfer, err := h.services.TransferService.DeleteTransfer(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error deleting transfer")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusOK)
}

func (h *Handler) uploadChunk(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	chunk, err := decodeJSON[models.EncryptedChunk](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transfer, err := h.services.TransferService.UploadChunk(r.Context(), userID, chi.URLParam(r, "id"), chunk)
	if err != nil {
		writeError(w, r, err, "error uploading chunk")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusOK)
}

func (h *Handler) listChunks(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	transferID := chi.URLParam(r, "id")
	indices, err := h.services.TransferService.ListChunkIndices(r.Context(), userID, transferID)
	if err != nil {
		writeError(w, r, err, "error listing chunks")
		return
	}

	writeChunkList(w, transferID, indices)
}

func (h *Handler) getChunk(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	index, err := chunkIndexParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chunk, err := h.services.TransferService.GetChunk(r.Context(), userID, chi.URLParam(r, "id"), index)
	if err != nil {
		writeError(w, r, err, "error reading chunk")
		return
	}

	utils.WriteJSON(w, chunk, http.StatusOK)
}

func (h *Handler) acceptTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	transfer, err := h.services.TransferService.AcceptTransfer(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error accepting transfer")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusOK)
}

func (h *Handler) refuseTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	transfer, err := h.services.TransferService.RefuseTransfer(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error refusing transfer")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusOK)
}

func (h *Handler) confirmRetrieved(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	req, err := decodeJSON[models.RetrievedRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transfer, err := h.services.TransferService.ConfirmRetrieved(r.Context(), userID, chi.URLParam(r, "id"), req.Success)
	if err != nil {
		writeError(w, r, err, "error confirming retrieval")
		return
	}

	utils.WriteJSON(w, transfer, http.StatusOK)
}

func writeChunkList(w http.ResponseWriter, transferID string, indices []uint32) {
	if indices == nil {
		indices = []uint32{}
	}
	utils.WriteJSON(w, models.ChunkListResponse{TransferID: transferID, Indices: indices}, http.StatusOK)
}
