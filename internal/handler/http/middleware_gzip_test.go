// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func gunzip(t *testing.T, data []byte) []byte {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return out
}

// echoChunk decodes an uploaded chunk and answers with its index list.
func echoChunk() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var chunk models.EncryptedChunk
		if err := json.NewDecoder(r.Body).Decode(&chunk); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ChunkListResponse{TransferID: "t-1", Indices: []uint32{chunk.Index}})
	})
}

func chunkBody(t *testing.T) []byte {
	body, err := json.Marshal(models.EncryptedChunk{
		Index:      3,
		Ciphertext: bytes.Repeat([]byte{0xAB}, 4096),
		Nonce:      make([]byte, 12),
		IsLast:     true,
	})
	require.NoError(t, err)
	return body
}

func TestGZip(t *testing.T) {
	const want = `{"transferId":"t-1","indices":[3]}` + "\n"

	tests := []struct {
		name           string
		gzipRequest    bool
		acceptGzip     bool
		wantStatus     int
		wantCompressed bool
	}{
		{name: "plain both ways", wantStatus: http.StatusOK},
		{name: "gzip request, plain response", gzipRequest: true, wantStatus: http.StatusOK},
		{name: "plain request, gzip response", acceptGzip: true, wantStatus: http.StatusOK, wantCompressed: true},
		{name: "gzip both ways", gzipRequest: true, acceptGzip: true, wantStatus: http.StatusOK, wantCompressed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = bytes.NewReader(chunkBody(t))
			if tt.gzipRequest {
				body = gzipBytes(t, chunkBody(t))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/transfers/t-1/chunks", body)
			if tt.gzipRequest {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptGzip {
				req.Header.Set("Accept-Encoding", "gzip, deflate")
			}
			rec := httptest.NewRecorder()

			withGZip(echoChunk()).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
			if tt.wantCompressed {
				assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				assert.Equal(t, want, string(gunzip(t, rec.Body.Bytes())))
			} else {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				assert.Equal(t, want, rec.Body.String())
			}
		})
	}
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/api/transfers/t-1/chunks", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGZip_NoContentIsNotEncoded(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/transfers/t-1/accept", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestGZip_HeadIsNotEncoded(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodHead, "/api/version", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}

func TestGZip_ErrorBodyIsEncoded(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "transfer temporarily unavailable", http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/keys/bob@b.example", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "transfer temporarily unavailable\n", string(gunzip(t, rec.Body.Bytes())))
}

func TestGZipResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &gzipResponseWriter{ResponseWriter: rec, gzipWriter: gzip.NewWriter(io.Discard)}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, w.wroteHeader)
	assert.False(t, w.wroteBody)
}

func TestGZip_ConcurrentUploadsShareNoState(t *testing.T) {
	handler := withGZip(echoChunk())
	payload := gzipBytes(t, chunkBody(t)).Bytes()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/api/transfers/t-1/chunks", bytes.NewReader(payload))
			req.Header.Set("Content-Encoding", "gzip")
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			zr, err := gzip.NewReader(rec.Body)
			if assert.NoError(t, err) {
				out, err := io.ReadAll(zr)
				assert.NoError(t, err)
				assert.JSONEq(t, `{"transferId":"t-1","indices":[3]}`, string(out))
			}
		}()
	}
	wg.Wait()
}

func TestWrappedReadCloser_Close(t *testing.T) {
	closed := 0
	rc := &wrappedReadCloser{Reader: strings.NewReader("x"), OnClose: func() { closed++ }}

	require.NoError(t, rc.Close())
	assert.Equal(t, 1, closed)

	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("x")}).Close())
}

func TestGZip_DecompressedBodyIsCapped(t *testing.T) {
	var readErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/transfers/x/chunks", gzipBytes(t, make([]byte, maxRequestBody+1)))
	req.Header.Set("Content-Encoding", "gzip")
	withGZip(next).ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}
