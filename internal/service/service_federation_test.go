// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testAnnouncement(t *testing.T, env *testEnv, receiverPublic []byte, size string) models.Announcement {
	t.Helper()

	_, wrapped := env.sealFile(t, []byte("x"), receiverPublic)
	return models.Announcement{
		ID:               utils.NewUUIDGenerator().Generate(),
		WrappedKey:       wrapped,
		Filename:         "report.pdf",
		Subject:          "quarterly",
		Size:             size,
		SenderAddress:    "alice@" + testPeerDomain,
		RecipientAddress: "bob@" + testDomain,
	}
}

// ─────────────────────────────────────────────
// ReceiveAnnouncement
// ─────────────────────────────────────────────

func TestFederationService_ReceiveAnnouncement(t *testing.T) {
	env := newTestEnv(t)
	_, bobKeys := env.addUser(t, "bob")
	a := testAnnouncement(t, env, bobKeys.Public, "1000")

	shadow, err := env.federation.ReceiveAnnouncement(context.Background(), testPeerDomain, a)
	require.NoError(t, err)
	assert.Equal(t, a.ID, shadow.ID)
	assert.Equal(t, models.OriginRemote, shadow.Origin)
	assert.Equal(t, models.StatusUploaded, shadow.Status)
	assert.Equal(t, int64(1000), shadow.Size)
	assert.Nil(t, shadow.SenderID)
	require.NotNil(t, shadow.ReceiverID)

	again, err := env.federation.ReceiveAnnouncement(context.Background(), testPeerDomain, a)
	require.NoError(t, err)
	assert.Equal(t, shadow.ID, again.ID)
	assert.Equal(t, 1, env.transferRepo.count())
	assert.Equal(t, 1, env.logs.countKind(a.ID, models.EventTransferCreated))
}

func TestFederationService_ReceiveAnnouncement_SpoofedSender(t *testing.T) {
	env := newTestEnv(t)
	_, bobKeys := env.addUser(t, "bob")
	a := testAnnouncement(t, env, bobKeys.Public, "1000")
	a.SenderAddress = "ceo@bank.example"

	_, err := env.federation.ReceiveAnnouncement(context.Background(), testPeerDomain, a)
	assert.ErrorIs(t, err, ErrDomainMismatch)
	assert.Zero(t, env.transferRepo.count())
	assert.Empty(t, env.logs.kinds(a.ID))
}

func TestFederationService_ReceiveAnnouncement_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(a *models.Announcement)
		wantErr error
	}{
		{
			name:    "unknown receiver",
			modify:  func(a *models.Announcement) { a.RecipientAddress = "nobody@" + testDomain },
			wantErr: ErrRecipientNotFound,
		},
		{
			name:    "receiver on another domain",
			modify:  func(a *models.Announcement) { a.RecipientAddress = "bob@c.example" },
			wantErr: ErrRecipientNotFound,
		},
		{
			name:    "size is not a number",
			modify:  func(a *models.Announcement) { a.Size = "lots" },
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "id is not a uuid",
			modify:  func(a *models.Announcement) { a.ID = "../../etc" },
			wantErr: ErrInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, bobKeys := env.addUser(t, "bob")
			a := testAnnouncement(t, env, bobKeys.Public, "1000")
			tt.modify(&a)

			_, err := env.federation.ReceiveAnnouncement(context.Background(), testPeerDomain, a)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, env.transferRepo.count())
		})
	}
}

// ─────────────────────────────────────────────
// Remote accept
// ─────────────────────────────────────────────

func TestFederationService_AcceptRemoteTransfer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob, bobKeys := env.addUser(t, "bob")

	data := bytes.Repeat([]byte("federated "), 4)
	chunks, wrapped := env.sealFile(t, data, bobKeys.Public)
	a := testAnnouncement(t, env, bobKeys.Public, "40")
	a.WrappedKey = wrapped
	a.ChunkSize = testChunkSize

	_, err := env.federation.ReceiveAnnouncement(ctx, testPeerDomain, a)
	require.NoError(t, err)

	env.peers.EXPECT().ListChunks(gomock.Any(), testPeerDomain, a.ID).Return([]uint32{0, 1, 2}, nil)
	env.peers.EXPECT().FetchChunk(gomock.Any(), testPeerDomain, a.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, index uint32) (models.EncryptedChunk, error) {
			return chunks[index], nil
		}).Times(3)
	gomock.InOrder(
		env.peers.EXPECT().NotifyStatus(gomock.Any(), testPeerDomain, a.ID, models.StatusAccepted).Return(nil),
		env.peers.EXPECT().NotifyStatus(gomock.Any(), testPeerDomain, a.ID, models.StatusRetrieved).Return(nil),
	)

	accepted, err := env.transfers.AcceptTransfer(ctx, bob.UserID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, accepted.Status)
	assert.Equal(t, 3, accepted.ChunkCount)

	// a second accept is a no-op and does not fetch again
	again, err := env.transfers.AcceptTransfer(ctx, bob.UserID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, again.Status)

	var fetched []models.EncryptedChunk
	for i := range uint32(3) {
		c, err := env.transfers.GetChunk(ctx, bob.UserID, a.ID, i)
		require.NoError(t, err)
		fetched = append(fetched, c)
	}
	fileKey, err := env.custody.UnwrapSymmetricKey(accepted.WrappedKey, bobKeys.Private)
	require.NoError(t, err)
	plain, err := crypto.DecryptChunks(fetched, fileKey)
	require.NoError(t, err)
	assert.Equal(t, data, plain)
}

func TestFederationService_AcceptRemoteTransfer_SizeExceeded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob, bobKeys := env.addUser(t, "bob")

	a := testAnnouncement(t, env, bobKeys.Public, "1000")
	_, err := env.federation.ReceiveAnnouncement(ctx, testPeerDomain, a)
	require.NoError(t, err)

	env.peers.EXPECT().ListChunks(gomock.Any(), testPeerDomain, a.ID).Return([]uint32{0, 1}, nil)
	env.peers.EXPECT().FetchChunk(gomock.Any(), testPeerDomain, a.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, index uint32) (models.EncryptedChunk, error) {
			return fakeCiphertextChunk(index, 1000, index == 1), nil
		}).MaxTimes(2)

	_, err = env.transfers.AcceptTransfer(ctx, bob.UserID, a.ID)
	assert.ErrorIs(t, err, ErrSizeExceeded)

	indices, err := env.chunks.ListChunks(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, indices)

	got, err := env.transferRepo.GetTransfer(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUploaded, got.Status)
	assert.Equal(t, 1, env.logs.countKind(a.ID, models.EventTransferAcceptedFailed))
}

func TestFederationService_AcceptRemoteTransfer_MisplacedFinalChunk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob, bobKeys := env.addUser(t, "bob")

	a := testAnnouncement(t, env, bobKeys.Public, "1000")
	_, err := env.federation.ReceiveAnnouncement(ctx, testPeerDomain, a)
	require.NoError(t, err)

	env.peers.EXPECT().ListChunks(gomock.Any(), testPeerDomain, a.ID).Return([]uint32{0, 1}, nil)
	env.peers.EXPECT().FetchChunk(gomock.Any(), testPeerDomain, a.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, index uint32) (models.EncryptedChunk, error) {
			return fakeCiphertextChunk(index, 10, index == 0), nil
		}).MaxTimes(2)

	_, err = env.transfers.AcceptTransfer(ctx, bob.UserID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidChunk)

	indices, err := env.chunks.ListChunks(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestFederationService_AcceptRemoteTransfer_ChunkListDisagreesWithSize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob, bobKeys := env.addUser(t, "bob")

	a := testAnnouncement(t, env, bobKeys.Public, "40")
	a.ChunkSize = testChunkSize
	_, err := env.federation.ReceiveAnnouncement(ctx, testPeerDomain, a)
	require.NoError(t, err)

	// 40 bytes in 16-byte chunks end at index 2
	env.peers.EXPECT().ListChunks(gomock.Any(), testPeerDomain, a.ID).Return([]uint32{0, 1, 2, 3}, nil)

	_, err = env.transfers.AcceptTransfer(ctx, bob.UserID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidChunk)

	got, err := env.transferRepo.GetTransfer(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUploaded, got.Status)
}

func TestFederationService_AcceptRemoteTransfer_PeerDown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob, bobKeys := env.addUser(t, "bob")

	a := testAnnouncement(t, env, bobKeys.Public, "1000")
	_, err := env.federation.ReceiveAnnouncement(ctx, testPeerDomain, a)
	require.NoError(t, err)

	env.peers.EXPECT().ListChunks(gomock.Any(), testPeerDomain, a.ID).Return(nil, adapter.ErrPeerUnavailable)

	_, err = env.transfers.AcceptTransfer(ctx, bob.UserID, a.ID)
	assert.ErrorIs(t, err, ErrTransferUnavailable)
}

// ─────────────────────────────────────────────
// Outgoing transfers seen by a peer
// ─────────────────────────────────────────────

func sentTransfer(t *testing.T, env *testEnv) models.Transfer {
	t.Helper()

	alice, _ := env.addUser(t, "alice")
	carolKeys, err := env.custody.GenerateKeyPair()
	require.NoError(t, err)

	env.peers.EXPECT().Announce(gomock.Any(), testPeerDomain, gomock.Any()).Return(nil)
	tr := env.uploadedTransfer(t, alice, "carol@"+testPeerDomain, carolKeys.Public, []byte("for carol"))
	require.Equal(t, models.StatusSent, tr.Status)
	return tr
}

func TestFederationService_AnnounceOnUpload(t *testing.T) {
	env := newTestEnv(t)
	tr := sentTransfer(t, env)

	assert.Equal(t, []models.EventKind{
		models.EventTransferCreated,
		models.EventTransferUploaded,
		models.EventTransferSent,
	}, env.logs.kinds(tr.ID))
}

func TestFederationService_AnnounceFailureKeepsUploaded(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := env.addUser(t, "alice")
	carolKeys, err := env.custody.GenerateKeyPair()
	require.NoError(t, err)

	env.peers.EXPECT().Announce(gomock.Any(), testPeerDomain, gomock.Any()).Return(adapter.ErrPeerUnavailable)
	tr := env.uploadedTransfer(t, alice, "carol@"+testPeerDomain, carolKeys.Public, []byte("for carol"))

	assert.Equal(t, models.StatusUploaded, tr.Status)
	assert.Equal(t, 1, env.logs.countKind(tr.ID, models.EventTransferSentFailed))
}

func TestFederationService_ListChunksForPeer(t *testing.T) {
	env := newTestEnv(t)
	tr := sentTransfer(t, env)
	ctx := context.Background()

	indices, err := env.federation.ListChunksForPeer(ctx, testPeerDomain, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, indices)

	chunk, err := env.federation.GetChunkForPeer(ctx, testPeerDomain, tr.ID, 0)
	require.NoError(t, err)
	assert.True(t, chunk.IsLast)

	_, err = env.federation.ListChunksForPeer(ctx, "c.example", tr.ID)
	assert.ErrorIs(t, err, ErrTransferNotFound)

	_, err = env.federation.GetChunkForPeer(ctx, "c.example", tr.ID, 0)
	assert.ErrorIs(t, err, ErrTransferNotFound)
}

func TestFederationService_ReceiveStatus(t *testing.T) {
	env := newTestEnv(t)
	tr := sentTransfer(t, env)
	ctx := context.Background()

	_, err := env.federation.ReceiveStatus(ctx, "c.example", tr.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, ErrTransferNotFound)

	_, err = env.federation.ReceiveStatus(ctx, testPeerDomain, tr.ID, models.StatusExpired)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	accepted, err := env.federation.ReceiveStatus(ctx, testPeerDomain, tr.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, accepted.Status)

	retrieved, err := env.federation.ReceiveStatus(ctx, testPeerDomain, tr.ID, models.StatusRetrieved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRetrieved, retrieved.Status)

	// chunks stay with the sender until retention, but peers may no longer fetch
	_, err = env.federation.ListChunksForPeer(ctx, testPeerDomain, tr.ID)
	assert.ErrorIs(t, err, ErrChunkNotAvailable)

	_, err = env.federation.ReceiveStatus(ctx, testPeerDomain, tr.ID, models.StatusRefused)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFederationService_ReceiveStatusRefusedDropsChunks(t *testing.T) {
	env := newTestEnv(t)
	tr := sentTransfer(t, env)
	ctx := context.Background()

	refused, err := env.federation.ReceiveStatus(ctx, testPeerDomain, tr.ID, models.StatusRefused)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRefused, refused.Status)

	indices, err := env.chunks.ListChunks(ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, indices)
}
