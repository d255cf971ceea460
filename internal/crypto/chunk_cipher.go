// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"cmp"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/MKhiriev/go-file-courier/models"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultChunkSize is the plaintext size of every chunk except the last.
	DefaultChunkSize = 512 * 1024

	// SymmetricKeySize is the size of a one-time file key (AES-256).
	SymmetricKeySize = 32

	// NonceSize is the AES-GCM nonce size used for chunks and protected keys.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag appended to each ciphertext.
	TagSize = 16
)

// Encryptor turns a plaintext stream into encrypted chunks. It is an
// explicit accumulator: pending holds plaintext not yet sealed and nextIndex
// is the index the next emitted chunk will carry.
//
// An Encryptor is not safe for concurrent use.
type Encryptor struct {
	aead      cipher.AEAD
	rand      io.Reader
	chunkSize int
	pending   []byte
	nextIndex uint32
	closed    bool
}

// NewEncryptor returns an Encryptor sealing chunks of chunkSize plaintext
// bytes under key.
func NewEncryptor(key []byte, chunkSize int) (*Encryptor, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	aead, err := newChunkAEAD(key)
	if err != nil {
		return nil, err
	}

	return &Encryptor{
		aead:      aead,
		rand:      rand.Reader,
		chunkSize: chunkSize,
		pending:   make([]byte, 0, chunkSize),
	}, nil
}

// Write buffers p and returns every chunk completed by it. Chunks returned
// here are never final; the final chunk comes from Close.
func (e *Encryptor) Write(p []byte) ([]models.EncryptedChunk, error) {
	if e.closed {
		return nil, ErrEncryptorClosed
	}

	var out []models.EncryptedChunk
	for len(p) > 0 {
		n := min(e.chunkSize-len(e.pending), len(p))
		e.pending = append(e.pending, p[:n]...)
		p = p[n:]

		if len(e.pending) < e.chunkSize {
			continue
		}

		chunk, err := e.seal(e.pending, false)
		Wipe(e.pending)
		e.pending = e.pending[:0]
		if err != nil {
			return out, err
		}
		out = append(out, chunk)
	}

	return out, nil
}

// Close seals whatever is buffered as the final chunk. The final chunk may be
// shorter than the chunk size, or empty when the stream length is an exact
// multiple of it. An Encryptor that never saw any data emits no chunks.
func (e *Encryptor) Close() ([]models.EncryptedChunk, error) {
	if e.closed {
		return nil, ErrEncryptorClosed
	}
	e.closed = true
	defer func() {
		Wipe(e.pending)
		e.pending = nil
	}()

	if len(e.pending) == 0 && e.nextIndex == 0 {
		return nil, nil
	}

	chunk, err := e.seal(e.pending, true)
	if err != nil {
		return nil, err
	}

	return []models.EncryptedChunk{chunk}, nil
}

// NextIndex returns the index the next emitted chunk will carry.
func (e *Encryptor) NextIndex() uint32 {
	return e.nextIndex
}

func (e *Encryptor) seal(plaintext []byte, last bool) (models.EncryptedChunk, error) {
	if e.nextIndex == math.MaxUint32 {
		return models.EncryptedChunk{}, ErrTooManyChunks
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return models.EncryptedChunk{}, fmt.Errorf("error generating nonce: %w", err)
	}

	index := e.nextIndex
	ciphertext := e.aead.Seal(nil, nonce, plaintext, chunkAAD(index, last))
	e.nextIndex++

	return models.EncryptedChunk{
		Index:      index,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		IsLast:     last,
	}, nil
}

// EncryptStream reads r to EOF and passes every sealed chunk to emit in index
// order. The emit callback owns the chunk.
func EncryptStream(r io.Reader, key []byte, chunkSize int, emit func(models.EncryptedChunk) error) error {
	enc, err := NewEncryptor(key, chunkSize)
	if err != nil {
		return err
	}

	buf := make([]byte, chunkSize)
	defer Wipe(buf)

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			chunks, err := enc.Write(buf[:n])
			if err != nil {
				return err
			}
			for _, c := range chunks {
				if err := emit(c); err != nil {
					return err
				}
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("error reading plaintext: %w", readErr)
		}
	}

	chunks, err := enc.Close()
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if err := emit(c); err != nil {
			return err
		}
	}

	return nil
}

// DecryptChunks verifies and decrypts a complete chunk set given in any
// order. Structural problems are reported before any decryption: a missing
// final chunk, then the first gap in the index sequence. Authentication
// failures name the lowest failing index. An empty set decrypts to an empty
// plaintext.
func DecryptChunks(chunks []models.EncryptedChunk, key []byte) ([]byte, error) {
	return DecryptChunksParallel(context.Background(), chunks, key, 1)
}

// DecryptChunksParallel is DecryptChunks with up to workers chunks decrypted
// concurrently. The result is identical for every worker count.
func DecryptChunksParallel(ctx context.Context, chunks []models.EncryptedChunk, key []byte, workers int) ([]byte, error) {
	ordered, err := OrderChunks(chunks)
	if err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return []byte{}, nil
	}

	aead, err := newChunkAEAD(key)
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, len(ordered))
	failures := make([]error, len(ordered))
	defer func() {
		for _, p := range parts {
			Wipe(p)
		}
	}()

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, c := range ordered {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pt, err := openChunk(aead, c)
			if err != nil {
				failures[i] = err
				return nil
			}
			parts[i] = pt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for i := range ordered {
		if failures[i] != nil {
			return nil, failures[i]
		}
		total += len(parts[i])
	}

	plaintext := make([]byte, 0, total)
	for _, p := range parts {
		plaintext = append(plaintext, p...)
	}

	return plaintext, nil
}

// OrderChunks returns a copy of chunks sorted by index after checking that
// they form a complete, contiguous set with a single final chunk.
func OrderChunks(chunks []models.EncryptedChunk) ([]models.EncryptedChunk, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(chunks)
	slices.SortStableFunc(sorted, func(a, b models.EncryptedChunk) int {
		return cmp.Compare(a.Index, b.Index)
	})

	lastPos := -1
	for i, c := range sorted {
		if !c.IsLast {
			continue
		}
		if lastPos >= 0 {
			return nil, ErrMisplacedLastChunk
		}
		lastPos = i
	}
	if lastPos < 0 {
		return nil, ErrIncompleteTransfer
	}

	for i, c := range sorted {
		if c.Index == uint32(i) {
			continue
		}
		if i > 0 && c.Index == sorted[i-1].Index {
			return nil, &DuplicateChunkError{Index: c.Index}
		}
		return nil, &MissingChunkError{Index: uint32(i)}
	}

	if lastPos != len(sorted)-1 {
		return nil, ErrMisplacedLastChunk
	}

	return sorted, nil
}

func openChunk(aead cipher.AEAD, c models.EncryptedChunk) ([]byte, error) {
	if len(c.Nonce) != aead.NonceSize() || len(c.Ciphertext) < aead.Overhead() {
		return nil, &AuthenticationFailedError{Index: c.Index}
	}

	pt, err := aead.Open(nil, c.Nonce, c.Ciphertext, chunkAAD(c.Index, c.IsLast))
	if err != nil {
		return nil, &AuthenticationFailedError{Index: c.Index}
	}

	return pt, nil
}

// chunkAAD binds a chunk's position and final flag to its tag.
func chunkAAD(index uint32, last bool) []byte {
	aad := make([]byte, 5)
	binary.BigEndian.PutUint32(aad, index)
	if last {
		aad[4] = 1
	}
	return aad
}

func newChunkAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: symmetric key must be %d bytes, got %d", ErrInvalidKeyLength, SymmetricKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}

	return cipher.NewGCM(block)
}
