// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the server's periodic background jobs: the retention
// sweeps and the announcement retry. Each job runs on its own ticker; the
// Workers aggregate starts and stops them together with the server.
package workers

import "context"

// Worker is a background job with an explicit lifetime.
//
// Start must not block. Stop cancels the job and waits for a run in
// progress to return; it is a no-op when the job is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
