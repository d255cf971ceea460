package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const transferID = "0192f4a8-7c1e-7b3a-9d2f-5e8a1c3b7d90"

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// uploaded records what a send pipeline gave the server.
type uploaded struct {
	mu      sync.Mutex
	request models.CreateTransferRequest
	chunks  map[uint32]models.EncryptedChunk
}

// expectSend wires the server and pin store for a successful send to bob.
func expectSend(tc *testCourier, bobPublic []byte, up *uploaded) {
	up.chunks = make(map[uint32]models.EncryptedChunk)

	tc.server.EXPECT().GetPublicKey(gomock.Any(), "bob@b.example").
		Return(models.PublicKeyResponse{Address: "bob@b.example", PublicKey: bobPublic}, nil)
	tc.local.EXPECT().GetPin(gomock.Any(), "bob@b.example").Return(models.KeyPin{}, store.ErrPinNotFound)
	tc.local.EXPECT().Pin(gomock.Any(), models.KeyPin{
		Address:     "bob@b.example",
		Fingerprint: tc.custody.FingerprintPublicKey(bobPublic),
		PinnedAt:    fixedNow,
	}).Return(nil)
	tc.server.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateTransferRequest) (models.Transfer, error) {
			up.request = req
			return models.Transfer{ID: transferID, Status: models.StatusCreated, Size: req.Size}, nil
		})
	tc.server.EXPECT().UploadChunk(gomock.Any(), transferID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, chunk models.EncryptedChunk) error {
			up.mu.Lock()
			defer up.mu.Unlock()
			up.chunks[chunk.Index] = chunk
			return nil
		}).AnyTimes()
	tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).
		Return(models.Transfer{ID: transferID, Status: models.StatusUploaded}, nil)
}

func TestSendThenReceive(t *testing.T) {
	ctx := context.Background()
	file := randomBytes(t, 2500)

	sender := newTestCourier(t, 1000)
	alice := sender.newSession(t, "alice@a.example")
	receiver := newTestCourier(t, 1000)
	bob := receiver.newSession(t, "bob@b.example")

	up := &uploaded{}
	expectSend(sender, bob.PublicKey, up)

	sent, err := sender.Send(ctx, alice, SendRequest{
		Recipient: "bob@b.example",
		Filename:  "photo.jpg",
		Subject:   "holiday",
		Size:      int64(len(file)),
		Body:      bytes.NewReader(file),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUploaded, sent.Status)

	assert.Equal(t, int64(2500), up.request.Size)
	assert.Equal(t, 1000, up.request.ChunkSize)
	assert.Equal(t, "photo.jpg", up.request.Filename)
	assert.Len(t, up.request.WrappedKey, crypto.WrappedKeySize)
	require.Len(t, up.chunks, 3)
	assert.True(t, up.chunks[2].IsLast)
	assert.False(t, up.chunks[0].IsLast)
	for _, c := range up.chunks {
		assert.NotContains(t, string(c.Ciphertext), string(file[:16]))
	}

	stored := models.Transfer{
		ID:         transferID,
		Sender:     "alice@a.example",
		Receiver:   "bob@b.example",
		Size:       int64(len(file)),
		WrappedKey: up.request.WrappedKey,
	}
	sentStatus, acceptedStatus, retrievedStatus := stored, stored, stored
	sentStatus.Status = models.StatusSent
	acceptedStatus.Status = models.StatusAccepted
	retrievedStatus.Status = models.StatusRetrieved

	gomock.InOrder(
		receiver.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(sentStatus, nil),
		receiver.server.EXPECT().Accept(gomock.Any(), transferID).Return(acceptedStatus, nil),
		receiver.server.EXPECT().ListChunks(gomock.Any(), transferID).Return([]uint32{2, 0, 1}, nil),
		receiver.server.EXPECT().ConfirmRetrieved(gomock.Any(), transferID, true).Return(nil),
		receiver.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(retrievedStatus, nil),
	)
	receiver.server.EXPECT().GetChunk(gomock.Any(), transferID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, index uint32) (models.EncryptedChunk, error) {
			return up.chunks[index], nil
		}).Times(3)

	var out bytes.Buffer
	got, err := receiver.Receive(ctx, bob, transferID, &out)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRetrieved, got.Status)
	assert.Equal(t, file, out.Bytes())
}

func TestSend_ExactMultipleOfChunkSize(t *testing.T) {
	tc := newTestCourier(t, 1000)
	alice := tc.newSession(t, "alice@a.example")
	bob := tc.newSession(t, "bob@b.example")

	up := &uploaded{}
	expectSend(tc, bob.PublicKey, up)

	_, err := tc.Send(context.Background(), alice, SendRequest{
		Recipient: "bob@b.example",
		Size:      2000,
		Body:      bytes.NewReader(randomBytes(t, 2000)),
	})
	require.NoError(t, err)

	require.Len(t, up.chunks, 3)
	assert.True(t, up.chunks[2].IsLast)
	assert.Len(t, up.chunks[2].Ciphertext, crypto.TagSize, "final chunk carries no plaintext")
}

func TestSend_RecipientKeyChanged(t *testing.T) {
	tc := newTestCourier(t, 1000)
	alice := tc.newSession(t, "alice@a.example")
	bob := tc.newSession(t, "bob@b.example")

	tc.server.EXPECT().GetPublicKey(gomock.Any(), "bob@b.example").
		Return(models.PublicKeyResponse{Address: "bob@b.example", PublicKey: bob.PublicKey}, nil)
	tc.local.EXPECT().GetPin(gomock.Any(), "bob@b.example").
		Return(models.KeyPin{Address: "bob@b.example", Fingerprint: "an-older-fingerprint"}, nil)

	_, err := tc.Send(context.Background(), alice, SendRequest{
		Recipient: "bob@b.example",
		Size:      10,
		Body:      bytes.NewReader(make([]byte, 10)),
	})

	assert.ErrorIs(t, err, ErrRecipientKeyChanged)
}

func TestSend_PinnedKeyMatches(t *testing.T) {
	tc := newTestCourier(t, 1000)
	alice := tc.newSession(t, "alice@a.example")
	bob := tc.newSession(t, "bob@b.example")

	tc.server.EXPECT().GetPublicKey(gomock.Any(), "bob@b.example").
		Return(models.PublicKeyResponse{PublicKey: bob.PublicKey}, nil)
	tc.local.EXPECT().GetPin(gomock.Any(), "bob@b.example").
		Return(models.KeyPin{Address: "bob@b.example", Fingerprint: tc.custody.FingerprintPublicKey(bob.PublicKey)}, nil)
	tc.server.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(models.Transfer{ID: transferID}, nil)
	tc.server.EXPECT().UploadChunk(gomock.Any(), transferID, gomock.Any()).Return(nil)
	tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(models.Transfer{ID: transferID, Status: models.StatusSent}, nil)

	got, err := tc.Send(context.Background(), alice, SendRequest{
		Recipient: "bob@b.example",
		Size:      10,
		Body:      bytes.NewReader(make([]byte, 10)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, got.Status)
}

func TestSend_Rejected(t *testing.T) {
	tc := newTestCourier(t, 1000)
	alice := tc.newSession(t, "alice@a.example")

	_, err := tc.Send(context.Background(), alice, SendRequest{Recipient: "bob@b.example", Body: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = tc.Send(context.Background(), alice, SendRequest{Recipient: "bob", Size: 1, Body: bytes.NewReader([]byte{1})})
	assert.ErrorIs(t, err, models.ErrInvalidAddress)

	tc.server.EXPECT().GetPublicKey(gomock.Any(), "bob@b.example").
		Return(models.PublicKeyResponse{PublicKey: []byte{1, 2, 3}}, nil)
	_, err = tc.Send(context.Background(), alice, SendRequest{Recipient: "bob@b.example", Size: 1, Body: bytes.NewReader([]byte{1})})
	assert.ErrorIs(t, err, crypto.ErrInvalidKeyLength)
}

func TestSend_UploadFailureDeletesTransfer(t *testing.T) {
	tc := newTestCourier(t, 100)
	alice := tc.newSession(t, "alice@a.example")
	bob := tc.newSession(t, "bob@b.example")

	tc.server.EXPECT().GetPublicKey(gomock.Any(), "bob@b.example").Return(models.PublicKeyResponse{PublicKey: bob.PublicKey}, nil)
	tc.local.EXPECT().GetPin(gomock.Any(), "bob@b.example").Return(models.KeyPin{}, store.ErrPinNotFound)
	tc.local.EXPECT().Pin(gomock.Any(), gomock.Any()).Return(nil)
	tc.server.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(models.Transfer{ID: transferID}, nil)
	gomock.InOrder(
		tc.server.EXPECT().UploadChunk(gomock.Any(), transferID, gomock.Any()).Return(nil),
		tc.server.EXPECT().UploadChunk(gomock.Any(), transferID, gomock.Any()).Return(adapter.ErrServiceUnavailable),
	)
	tc.server.EXPECT().DeleteTransfer(gomock.Any(), transferID).Return(nil)

	_, err := tc.Send(context.Background(), alice, SendRequest{
		Recipient: "bob@b.example",
		Size:      250,
		Body:      bytes.NewReader(randomBytes(t, 250)),
	})

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.ErrorIs(t, err, adapter.ErrServiceUnavailable)
}

// encryptedTransfer builds what the server would hold for a file sent to
// recipientPublic.
func encryptedTransfer(t *testing.T, custody crypto.KeyCustodyService, recipientPublic, file []byte, chunkSize int) (models.Transfer, []models.EncryptedChunk) {
	t.Helper()

	fileKey, err := custody.GenerateSymmetricKey()
	require.NoError(t, err)
	wrapped, err := custody.WrapSymmetricKey(fileKey, recipientPublic)
	require.NoError(t, err)

	var chunks []models.EncryptedChunk
	require.NoError(t, crypto.EncryptStream(bytes.NewReader(file), fileKey, chunkSize, func(c models.EncryptedChunk) error {
		chunks = append(chunks, c)
		return nil
	}))

	return models.Transfer{
		ID:         transferID,
		Sender:     "alice@a.example",
		Receiver:   "bob@b.example",
		Size:       int64(len(file)),
		WrappedKey: wrapped,
		Status:     models.StatusAccepted,
	}, chunks
}

func expectChunks(tc *testCourier, chunks []models.EncryptedChunk) {
	indices := make([]uint32, len(chunks))
	for i, c := range chunks {
		indices[i] = c.Index
	}
	tc.server.EXPECT().ListChunks(gomock.Any(), transferID).Return(indices, nil)
	tc.server.EXPECT().GetChunk(gomock.Any(), transferID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, index uint32) (models.EncryptedChunk, error) {
			return chunks[index], nil
		}).Times(len(chunks))
}

func TestReceive_TamperedChunk(t *testing.T) {
	tc := newTestCourier(t, 64)
	bob := tc.newSession(t, "bob@b.example")
	transfer, chunks := encryptedTransfer(t, tc.custody, bob.PublicKey, randomBytes(t, 200), 64)
	chunks[1].Ciphertext[0] ^= 0x01

	tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(transfer, nil)
	expectChunks(tc, chunks)
	tc.server.EXPECT().ConfirmRetrieved(gomock.Any(), transferID, false).Return(nil)

	var out bytes.Buffer
	_, err := tc.Receive(context.Background(), bob, transferID, &out)

	assert.ErrorIs(t, err, ErrIntegrity)
	var authErr *crypto.AuthenticationFailedError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, uint32(1), authErr.Index)
	assert.Zero(t, out.Len())
}

func TestReceive_WrongPrivateKey(t *testing.T) {
	tc := newTestCourier(t, 64)
	bob := tc.newSession(t, "bob@b.example")
	stranger := tc.newSession(t, "carol@c.example")
	transfer, chunks := encryptedTransfer(t, tc.custody, stranger.PublicKey, randomBytes(t, 100), 64)

	tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(transfer, nil)
	expectChunks(tc, chunks)
	tc.server.EXPECT().ConfirmRetrieved(gomock.Any(), transferID, false).Return(nil)

	_, err := tc.Receive(context.Background(), bob, transferID, &bytes.Buffer{})

	assert.ErrorIs(t, err, ErrIntegrity)
	assert.ErrorIs(t, err, crypto.ErrUnwrapFailed)
}

func TestReceive_AlreadyRetrieved(t *testing.T) {
	tc := newTestCourier(t, 64)
	bob := tc.newSession(t, "bob@b.example")
	file := randomBytes(t, 100)
	transfer, chunks := encryptedTransfer(t, tc.custody, bob.PublicKey, file, 64)
	transfer.Status = models.StatusRetrieved

	tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(transfer, nil).Times(2)
	expectChunks(tc, chunks)

	var out bytes.Buffer
	got, err := tc.Receive(context.Background(), bob, transferID, &out)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRetrieved, got.Status)
	assert.Equal(t, file, out.Bytes())
}

func TestReceive_NotReceivable(t *testing.T) {
	tests := []struct {
		name     string
		receiver string
		status   models.TransferStatus
		wantErr  error
	}{
		{name: "addressed to someone else", receiver: "carol@c.example", status: models.StatusSent, wantErr: ErrNotRecipient},
		{name: "refused", receiver: "bob@b.example", status: models.StatusRefused, wantErr: ErrNotReceivable},
		{name: "expired", receiver: "bob@b.example", status: models.StatusExpired, wantErr: ErrNotReceivable},
		{name: "still uploading", receiver: "bob@b.example", status: models.StatusCreated, wantErr: ErrNotReceivable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCourier(t, 64)
			bob := tc.newSession(t, "bob@b.example")
			tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).
				Return(models.Transfer{ID: transferID, Receiver: tt.receiver, Status: tt.status}, nil)

			_, err := tc.Receive(context.Background(), bob, transferID, &bytes.Buffer{})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReceive_FetchFailure(t *testing.T) {
	tc := newTestCourier(t, 64)
	bob := tc.newSession(t, "bob@b.example")
	transfer, _ := encryptedTransfer(t, tc.custody, bob.PublicKey, randomBytes(t, 100), 64)

	tc.server.EXPECT().GetTransfer(gomock.Any(), transferID).Return(transfer, nil)
	tc.server.EXPECT().ListChunks(gomock.Any(), transferID).Return([]uint32{0, 1}, nil)
	tc.server.EXPECT().GetChunk(gomock.Any(), transferID, gomock.Any()).
		Return(models.EncryptedChunk{}, adapter.ErrServiceUnavailable).MinTimes(1)

	_, err := tc.Receive(context.Background(), bob, transferID, &bytes.Buffer{})

	assert.ErrorIs(t, err, adapter.ErrServiceUnavailable)
	assert.NotErrorIs(t, err, ErrIntegrity)
}

func TestFingerprintAndPin(t *testing.T) {
	tc := newTestCourier(t, 64)
	alice := tc.newSession(t, "alice@a.example")
	bob := tc.newSession(t, "bob@b.example")
	want := tc.custody.FingerprintPublicKey(bob.PublicKey)

	tc.server.EXPECT().GetPublicKey(gomock.Any(), "bob@b.example").
		Return(models.PublicKeyResponse{Address: "bob@b.example", PublicKey: bob.PublicKey, Fingerprint: "server-says"}, nil).Times(2)

	t.Run("fingerprint without pin", func(t *testing.T) {
		tc.local.EXPECT().GetPin(gomock.Any(), "bob@b.example").Return(models.KeyPin{}, store.ErrPinNotFound)

		key, pin, err := tc.Fingerprint(context.Background(), alice, "bob@b.example")
		require.NoError(t, err)

		assert.Equal(t, want, key.Fingerprint)
		assert.Nil(t, pin)
	})

	t.Run("re-pin", func(t *testing.T) {
		tc.local.EXPECT().Pin(gomock.Any(), models.KeyPin{Address: "bob@b.example", Fingerprint: want, PinnedAt: fixedNow}).Return(nil)

		pin, err := tc.Pin(context.Background(), alice, "bob@b.example")
		require.NoError(t, err)

		assert.Equal(t, want, pin.Fingerprint)
	})
}

func TestListRefuseDelete(t *testing.T) {
	tc := newTestCourier(t, 64)
	bob := tc.newSession(t, "bob@b.example")
	ctx := context.Background()

	tc.server.EXPECT().ListTransfers(gomock.Any(), models.Outbox).Return([]models.Transfer{{ID: transferID}}, nil)
	tc.server.EXPECT().Refuse(gomock.Any(), transferID).Return(nil)
	tc.server.EXPECT().DeleteTransfer(gomock.Any(), transferID).Return(adapter.ErrForbidden)

	list, err := tc.List(ctx, bob, models.Outbox)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, tc.Refuse(ctx, bob, transferID))
	assert.ErrorIs(t, tc.Delete(ctx, bob, transferID), adapter.ErrForbidden)
}
