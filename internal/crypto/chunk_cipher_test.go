package crypto

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, SymmetricKeySize)
	_, err := io.ReadFull(rand.Reader, key)
	require.NoError(t, err)
	return key
}

func randomPlaintext(t *testing.T, n int) []byte {
	t.Helper()
	p := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, p)
	require.NoError(t, err)
	return p
}

func encryptAll(t *testing.T, plaintext, key []byte, chunkSize int) []models.EncryptedChunk {
	t.Helper()
	var chunks []models.EncryptedChunk
	err := EncryptStream(bytes.NewReader(plaintext), key, chunkSize, func(c models.EncryptedChunk) error {
		chunks = append(chunks, c)
		return nil
	})
	require.NoError(t, err)
	return chunks
}

// ── round trip ────────────────────────────────────────────────────────────────

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	const chunkSize = 64

	tests := []struct {
		name       string
		size       int
		wantChunks int
	}{
		{name: "single byte", size: 1, wantChunks: 1},
		{name: "shorter than chunk", size: chunkSize - 1, wantChunks: 1},
		{name: "exactly one chunk", size: chunkSize, wantChunks: 2},
		{name: "several chunks with tail", size: 3*chunkSize + 7, wantChunks: 4},
		{name: "several exact chunks", size: 3 * chunkSize, wantChunks: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := testKey(t)
			plaintext := randomPlaintext(t, tt.size)

			chunks := encryptAll(t, plaintext, key, chunkSize)
			require.Len(t, chunks, tt.wantChunks)

			for i, c := range chunks {
				assert.Equal(t, uint32(i), c.Index)
				assert.Len(t, c.Nonce, NonceSize)
				assert.Equal(t, i == len(chunks)-1, c.IsLast)
			}

			got, err := DecryptChunks(chunks, key)
			require.NoError(t, err)
			assert.Equal(t, plaintext, got)
		})
	}
}

func TestEncryptStream_EmptyInputProducesNoChunks(t *testing.T) {
	key := testKey(t)

	chunks := encryptAll(t, nil, key, DefaultChunkSize)
	assert.Empty(t, chunks)

	got, err := DecryptChunks(chunks, key)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncryptor_ArbitraryWriteSizes(t *testing.T) {
	key := testKey(t)
	plaintext := randomPlaintext(t, 1000)

	enc, err := NewEncryptor(key, 100)
	require.NoError(t, err)

	var chunks []models.EncryptedChunk
	for _, piece := range [][]byte{plaintext[:3], plaintext[3:250], plaintext[250:251], plaintext[251:]} {
		out, err := enc.Write(piece)
		require.NoError(t, err)
		chunks = append(chunks, out...)
	}
	tail, err := enc.Close()
	require.NoError(t, err)
	chunks = append(chunks, tail...)

	require.Len(t, chunks, 11)
	assert.Empty(t, chunks[10].Ciphertext[:len(chunks[10].Ciphertext)-TagSize])

	got, err := DecryptChunks(chunks, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptor_UseAfterClose(t *testing.T) {
	enc, err := NewEncryptor(testKey(t), 16)
	require.NoError(t, err)

	_, err = enc.Close()
	require.NoError(t, err)

	_, err = enc.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrEncryptorClosed)
	_, err = enc.Close()
	assert.ErrorIs(t, err, ErrEncryptorClosed)
}

func TestNewEncryptor_Validation(t *testing.T) {
	_, err := NewEncryptor(testKey(t), 0)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = NewEncryptor(make([]byte, 16), 64)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestEncryptor_NoncesAreUnique(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*50), key, 64)

	seen := make(map[string]struct{}, len(chunks))
	for _, c := range chunks {
		_, dup := seen[string(c.Nonce)]
		require.False(t, dup, "nonce reused at chunk %d", c.Index)
		seen[string(c.Nonce)] = struct{}{}
	}
}

// ── ordering & structure ──────────────────────────────────────────────────────

func TestDecryptChunks_OrderIndependent(t *testing.T) {
	key := testKey(t)
	plaintext := randomPlaintext(t, 64*5+3)
	chunks := encryptAll(t, plaintext, key, 64)

	shuffled := []models.EncryptedChunk{chunks[3], chunks[5], chunks[0], chunks[2], chunks[4], chunks[1]}

	got, err := DecryptChunks(shuffled, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptChunks_MissingChunk(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*4+1), key, 64)

	withGap := append([]models.EncryptedChunk{}, chunks[:2]...)
	withGap = append(withGap, chunks[3:]...)

	_, err := DecryptChunks(withGap, key)
	var missing *MissingChunkError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, uint32(2), missing.Index)
}

func TestDecryptChunks_IncompleteTransfer(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*3+1), key, 64)

	_, err := DecryptChunks(chunks[:len(chunks)-1], key)
	assert.ErrorIs(t, err, ErrIncompleteTransfer)
}

func TestDecryptChunks_IncompleteCheckedBeforeGaps(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*3+1), key, 64)

	_, err := DecryptChunks([]models.EncryptedChunk{chunks[0], chunks[2]}, key)
	assert.ErrorIs(t, err, ErrIncompleteTransfer)
}

func TestDecryptChunks_DuplicateIndex(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*2+1), key, 64)

	_, err := DecryptChunks(append(chunks, chunks[1]), key)
	var dup *DuplicateChunkError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint32(1), dup.Index)
}

func TestDecryptChunks_FlagOnWrongChunk(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*2+1), key, 64)

	chunks[0].IsLast = true
	_, err := DecryptChunks(chunks, key)
	assert.ErrorIs(t, err, ErrMisplacedLastChunk)
}

// ── tamper detection ──────────────────────────────────────────────────────────

func TestDecryptChunks_TamperDetection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.EncryptedChunk)
	}{
		{name: "ciphertext bit", mutate: func(c *models.EncryptedChunk) { c.Ciphertext[0] ^= 0x01 }},
		{name: "tag bit", mutate: func(c *models.EncryptedChunk) { c.Ciphertext[len(c.Ciphertext)-1] ^= 0x80 }},
		{name: "nonce bit", mutate: func(c *models.EncryptedChunk) { c.Nonce[5] ^= 0x10 }},
		{name: "short nonce", mutate: func(c *models.EncryptedChunk) { c.Nonce = c.Nonce[:8] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := testKey(t)
			chunks := encryptAll(t, randomPlaintext(t, 64*3+9), key, 64)
			tt.mutate(&chunks[2])

			_, err := DecryptChunks(chunks, key)
			var authErr *AuthenticationFailedError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, uint32(2), authErr.Index)
		})
	}
}

func TestDecryptChunks_SwappedIndicesFailAuthentication(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*3+9), key, 64)

	chunks[0].Index, chunks[1].Index = chunks[1].Index, chunks[0].Index

	_, err := DecryptChunks(chunks, key)
	var authErr *AuthenticationFailedError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, uint32(0), authErr.Index)
}

func TestDecryptChunks_WrongKey(t *testing.T) {
	chunks := encryptAll(t, randomPlaintext(t, 10), testKey(t), 64)

	_, err := DecryptChunks(chunks, testKey(t))
	var authErr *AuthenticationFailedError
	assert.True(t, errors.As(err, &authErr))
}

// ── parallel ──────────────────────────────────────────────────────────────────

func TestDecryptChunksParallel_MatchesSequential(t *testing.T) {
	key := testKey(t)
	plaintext := randomPlaintext(t, 64*40+17)
	chunks := encryptAll(t, plaintext, key, 64)

	for _, workers := range []int{0, 1, 4, 64} {
		got, err := DecryptChunksParallel(context.Background(), chunks, key, workers)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got, "workers=%d", workers)
	}
}

func TestDecryptChunksParallel_ReportsLowestFailingIndex(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*20), key, 64)
	chunks[17].Ciphertext[0] ^= 1
	chunks[4].Ciphertext[0] ^= 1

	_, err := DecryptChunksParallel(context.Background(), chunks, key, 8)
	var authErr *AuthenticationFailedError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, uint32(4), authErr.Index)
}

func TestDecryptChunksParallel_CanceledContext(t *testing.T) {
	key := testKey(t)
	chunks := encryptAll(t, randomPlaintext(t, 64*3), key, 64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DecryptChunksParallel(ctx, chunks, key, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	Wipe(nil)
}
