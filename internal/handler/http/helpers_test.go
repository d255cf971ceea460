// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/mock"
	"github.com/MKhiriev/go-file-courier/internal/resolver"
	"github.com/MKhiriev/go-file-courier/internal/service"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testToken      = "valid-token"
	testUserID     = int64(7)
	testPeerDomain = "b.example"
	testTransferID = "6f1c2a8e-4b7d-4e0a-9a55-3c2f1d0b9e71"
)

// fakePeerAuthenticator accepts a fixed domain from a fixed origin.
type fakePeerAuthenticator struct {
	domain string
	origin netip.Addr
	err    error

	gotOrigin netip.Addr
}

func (f *fakePeerAuthenticator) Authenticate(_ context.Context, claimedDomain string, originIP netip.Addr) error {
	f.gotOrigin = originIP
	if f.err != nil {
		return f.err
	}
	if claimedDomain != f.domain || originIP != f.origin {
		return resolver.ErrOriginMismatch
	}
	return nil
}

type testHandler struct {
	*Handler

	authSvc    *mock.MockAuthService
	keys       *mock.MockKeyService
	transfers  *mock.MockTransferService
	federation *mock.MockFederationService
	appInfo    *mock.MockAppInfoService
	peers      *fakePeerAuthenticator
	router     http.Handler
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	th := &testHandler{
		authSvc:    mock.NewMockAuthService(ctrl),
		keys:       mock.NewMockKeyService(ctrl),
		transfers:  mock.NewMockTransferService(ctrl),
		federation: mock.NewMockFederationService(ctrl),
		appInfo:    mock.NewMockAppInfoService(ctrl),
		peers: &fakePeerAuthenticator{
			domain: testPeerDomain,
			origin: netip.MustParseAddr("192.0.2.10"),
		},
	}

	services := &service.Services{
		AuthService:       th.authSvc,
		KeyService:        th.keys,
		TransferService:   th.transfers,
		FederationService: th.federation,
		AppInfoService:    th.appInfo,
	}
	th.Handler = NewHandler(services, th.peers, config.StructuredConfig{}, logger.Nop())
	th.router = th.Init()

	// any request with the test token is user testUserID
	th.authSvc.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: testUserID}, nil).AnyTimes()
	th.authSvc.EXPECT().ParseToken(gomock.Any(), gomock.Not(testToken)).Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).AnyTimes()

	return th
}

// do sends a client API request with the test token.
func (th *testHandler) do(method, path string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, jsonBody(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

// doPeer sends a federation request from the authenticated peer.
func (th *testHandler) doPeer(method, path string, body any) *httptest.ResponseRecorder {
	return th.doPeerFrom("192.0.2.10:44321", method, path, body)
}

// doPeerFrom sends a request claiming the peer domain from remoteAddr.
func (th *testHandler) doPeerFrom(remoteAddr, method, path string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, jsonBody(body))
	req.Header.Set(adapter.FederationDomainHeader, testPeerDomain)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

func jsonBody(body any) io.Reader {
	switch b := body.(type) {
	case nil:
		return nil
	case string:
		return bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		return bytes.NewReader(data)
	}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
