// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the end-user side of the courier.
//
// Every operation takes an explicit [Session] holding the bearer token and
// the unlocked private key; nothing is kept in package state. Files are
// encrypted before they leave the process and decrypted only after every
// chunk has been fetched, so the server never sees plaintext or an
// unwrapped file key.
//
// Recipient keys are pinned on first use in the local SQLite store. A key
// that differs from its pin aborts a send with [ErrRecipientKeyChanged]
// until the user re-pins it explicitly.
package client
