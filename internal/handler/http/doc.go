// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the inbound HTTP transport of file-courier.
//
// Two route trees share one chi router:
//
//   - /api/... is the client API. Requests carry a JWT bearer token issued
//     at login; the auth middleware resolves it to a local user id.
//   - /federation/... is the server-to-server API. Requests carry the
//     X-Federation-Domain header, and the federation middleware accepts them
//     only when the request origin is an address of that domain's server.
//
// Handlers decode the wire shapes from models, call the service layer and
// map service errors to fixed status codes and messages.
package http
