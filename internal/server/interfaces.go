// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the process.
//
// RunServer blocks until ctx is cancelled or the listener fails, then shuts
// everything down. Shutdown may be called from another goroutine to stop a
// running server.
type Server interface {
	RunServer(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Background is work that runs next to the listener, such as the retention
// workers.
type Background interface {
	Start(ctx context.Context)
	Stop()
}
