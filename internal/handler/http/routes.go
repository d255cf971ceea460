// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxRequestBody bounds every request body. The largest body is one chunk
// of the maximum size, base64 encoded inside JSON.
const maxRequestBody = 24 << 20

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(middleware.RequestSize(maxRequestBody))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// client API
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/keys", h.putKeys)
		r.Get("/api/keys", h.getOwnKeys)
		r.Get("/api/keys/{address}", h.getPublicKey)

		r.Post("/api/transfers", h.createTransfer)
		r.Get("/api/transfers", h.listTransfers)
		r.Get("/api/transfers/{id}", h.getTransfer)
		r.Delete("/api/transfers/{id}", h.deleteTransfer)
		r.Post("/api/transfers/{id}/chunks", h.uploadChunk)
		r.Get("/api/transfers/{id}/chunks", h.listChunks)
		r.Get("/api/transfers/{id}/chunks/{index}", h.getChunk)
		r.Post("/api/transfers/{id}/accept", h.acceptTransfer)
		r.Post("/api/transfers/{id}/refuse", h.refuseTransfer)
		r.Post("/api/transfers/{id}/retrieved", h.confirmRetrieved)
	})

	// server-to-server API
	router.Group(func(r chi.Router) {
		r.Use(h.federationAuth)

		r.Post("/federation/transfers", h.receiveAnnouncement)
		r.Get("/federation/transfers/{id}/chunks", h.listChunksForPeer)
		r.Get("/federation/transfers/{id}/chunks/{index}", h.getChunkForPeer)
		r.Post("/federation/transfers/{id}/status", h.receiveStatus)
		r.Get("/federation/keys/{login}", h.getPublicKeyForPeer)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
