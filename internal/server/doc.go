// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the courier's HTTP server.
//
// One listener serves both the client API and the federation API. The
// server owns the process lifecycle: it starts the retention workers,
// waits for a termination signal, shuts the listener down within the
// configured timeout and then stops the workers and waits for background
// service work.
package server
