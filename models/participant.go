// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Participant is one side of a transfer. It is a closed set: the only
// implementations are LocalUser and RemoteUser, and callers branch on it with
// a type switch that treats any other value as an error.
type Participant interface {
	// Address returns the federated address of the participant.
	Address() Address

	participant()
}

// LocalUser is an account hosted on this server.
type LocalUser struct {
	UserID    int64
	Login     string
	Domain    string
	PublicKey []byte
}

// RemoteUser is an account hosted on another federation member. Only its
// address is known locally.
type RemoteUser struct {
	Login  string
	Domain string
}

func (u LocalUser) Address() Address  { return Address{Login: u.Login, Domain: u.Domain} }
func (u RemoteUser) Address() Address { return Address{Login: u.Login, Domain: u.Domain} }

func (LocalUser) participant()  {}
func (RemoteUser) participant() {}
