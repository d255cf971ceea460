package server

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/handler"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/mock"
	"github.com/MKhiriev/go-file-courier/internal/service"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type spyBackground struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (b *spyBackground) Start(context.Context) { b.started.Store(true) }

func (b *spyBackground) Stop() { b.stopped.Store(true) }

type allowAll struct{}

func (allowAll) Authenticate(context.Context, string, netip.Addr) error { return nil }

func newTestServer(t *testing.T, bg Background, wait func()) (*server, chan net.Listener) {
	t.Helper()

	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(models.VersionResponse{Version: "v1"}).AnyTimes()

	cfg := config.StructuredConfig{}
	cfg.Server.HTTPAddress = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second

	handlers, err := handler.NewHandlers(&service.Services{AppInfoService: appInfo}, allowAll{}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, bg, wait, cfg.Server, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	listeners := make(chan net.Listener, 1)
	s.listen = func(network, address string) (net.Listener, error) {
		ln, err := net.Listen(network, address)
		if err == nil {
			listeners <- ln
		}
		return ln, err
	}
	return s, listeners
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, nil, nil, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	assert.ErrorIs(t, err, errNoHTTPHandler)

	_, err = NewServer(&handler.Handlers{}, nil, nil, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	assert.ErrorIs(t, err, errNoHTTPHandler)
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	cfg := config.StructuredConfig{}
	cfg.Server.HTTPAddress = ":8080"
	handlers, err := handler.NewHandlers(&service.Services{}, allowAll{}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, nil, nil, cfg.Server, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, defaultShutdownTimeout, srv.(*server).shutdownTimeout)
}

func TestRunServer_ServesUntilCancelled(t *testing.T) {
	bg := &spyBackground{}
	var waited atomic.Bool
	s, listeners := newTestServer(t, bg, func() { waited.Store(true) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()

	var ln net.Listener
	select {
	case ln = <-listeners:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not listen")
	}

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/version")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	assert.True(t, bg.started.Load())
	assert.False(t, bg.stopped.Load())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.True(t, bg.stopped.Load())
	assert.True(t, waited.Load())

	_, err := http.Get("http://" + ln.Addr().String() + "/api/version")
	assert.Error(t, err)
}

func TestRunServer_ListenError(t *testing.T) {
	bg := &spyBackground{}
	s, _ := newTestServer(t, bg, nil)
	s.listen = func(string, string) (net.Listener, error) {
		return nil, assert.AnError
	}

	err := s.RunServer(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, bg.started.Load())
}

func TestShutdown_RunsOnce(t *testing.T) {
	var waits atomic.Int32
	s, _ := newTestServer(t, nil, func() { waits.Add(1) })

	require.NoError(t, s.Shutdown(context.Background()))
	require.NoError(t, s.Shutdown(context.Background()))

	assert.Equal(t, int32(1), waits.Load())
}
