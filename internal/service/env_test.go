// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/mock"
	"github.com/MKhiriev/go-file-courier/internal/validators"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testDomain      = "a.example"
	testPeerDomain  = "b.example"
	testChunkSize   = 16
	testCreatedWait = time.Hour
	testRetention   = 24 * time.Hour
	testLogWindow   = 48 * time.Hour
)

// testEnv wires the transfer, federation and retention services over
// in-memory repositories, a directory-backed chunk store and a mocked peer.
type testEnv struct {
	users        *memUserRepo
	transferRepo *memTransferRepo
	logs         *memLogRepo
	chunks       *countingChunkStore
	bus          *EventBus
	lifecycle    *Lifecycle
	peers        *mock.MockPeerAdapter

	transfers  TransferService
	federation FederationService
	retention  *retentionService
	keys       KeyService

	custody crypto.KeyCustodyService
	cfg     config.StructuredConfig
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App:        config.App{Domain: testDomain},
		Crypto:     config.Crypto{ChunkSize: testChunkSize},
		Federation: config.Federation{FetchConcurrency: 2},
		Workers: config.Workers{
			CreatedGrace:    testCreatedWait,
			RetentionWindow: testRetention,
			LogRetention:    testLogWindow,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		users:        newMemUserRepo(),
		transferRepo: newMemTransferRepo(),
		logs:         &memLogRepo{},
		chunks:       newTestChunkStore(t),
		bus:          NewEventBus(),
		peers:        mock.NewMockPeerAdapter(ctrl),
		custody:      crypto.NewKeyCustody(crypto.DefaultKDFParams()),
		cfg:          testConfig(),
	}
	env.bus.Subscribe(NewAuditLogListener(env.logs))

	log := logger.Nop()
	validator := validators.NewTransferValidator()
	env.lifecycle = NewLifecycle(env.transferRepo, env.chunks, env.bus)
	env.federation = NewFederationService(env.lifecycle, env.users, env.peers, validator, env.cfg, log)
	env.transfers = NewTransferService(env.lifecycle, env.users, env.federation, validator, env.cfg, log)
	env.retention = NewRetentionService(env.lifecycle, env.logs, env.federation, env.cfg, log).(*retentionService)
	env.keys = NewKeyService(env.users, env.peers, env.bus, validator, env.cfg.App, log)

	return env
}

// addUser registers a local user with a fresh key pair.
func (e *testEnv) addUser(t *testing.T, login string) (models.User, models.KeyPair) {
	t.Helper()

	pair, err := e.custody.GenerateKeyPair()
	require.NoError(t, err)

	user, err := e.users.CreateUser(context.Background(), models.User{Login: login, Password: "digest"})
	require.NoError(t, err)
	require.NoError(t, e.users.UpdateUserKeys(context.Background(), user.UserID, pair.Public, testProtectedKey()))

	user, err = e.users.FindUserByID(context.Background(), user.UserID)
	require.NoError(t, err)
	return user, pair
}

func testProtectedKey() models.ProtectedPrivateKey {
	return models.ProtectedPrivateKey{
		Ciphertext: bytes.Repeat([]byte{1}, crypto.ProtectedKeySize),
		Salt:       bytes.Repeat([]byte{2}, crypto.SaltSize),
		Nonce:      bytes.Repeat([]byte{3}, crypto.NonceSize),
	}
}

// sealFile encrypts data under a fresh file key wrapped for recipientPublic.
func (e *testEnv) sealFile(t *testing.T, data []byte, recipientPublic []byte) ([]models.EncryptedChunk, []byte) {
	t.Helper()

	fileKey, err := e.custody.GenerateSymmetricKey()
	require.NoError(t, err)
	wrapped, err := e.custody.WrapSymmetricKey(fileKey, recipientPublic)
	require.NoError(t, err)

	var chunks []models.EncryptedChunk
	err = crypto.EncryptStream(bytes.NewReader(data), fileKey, testChunkSize, func(c models.EncryptedChunk) error {
		chunks = append(chunks, c)
		return nil
	})
	require.NoError(t, err)

	return chunks, wrapped
}

// uploadedTransfer sends data from sender to receiver and uploads every
// chunk in order.
func (e *testEnv) uploadedTransfer(t *testing.T, sender models.User, receiver string, receiverPublic []byte, data []byte) models.Transfer {
	t.Helper()
	ctx := context.Background()

	chunks, wrapped := e.sealFile(t, data, receiverPublic)
	created, err := e.transfers.CreateTransfer(ctx, sender.UserID, models.CreateTransferRequest{
		Receiver:   receiver,
		Filename:   "notes.txt",
		Size:       int64(len(data)),
		WrappedKey: wrapped,
	})
	require.NoError(t, err)

	var last models.Transfer
	for _, c := range chunks {
		last, err = e.transfers.UploadChunk(ctx, sender.UserID, created.ID, c)
		require.NoError(t, err)
	}
	return last
}

// fakeCiphertextChunk returns a chunk the server accepts without being able
// to decrypt it.
func fakeCiphertextChunk(index uint32, plaintextLen int, last bool) models.EncryptedChunk {
	return models.EncryptedChunk{
		Index:      index,
		Nonce:      bytes.Repeat([]byte{9}, crypto.NonceSize),
		Ciphertext: bytes.Repeat([]byte{7}, plaintextLen+crypto.TagSize),
		IsLast:     last,
	}
}
