package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneymate/internal/auth"
	"github.com/mmynk/moneymate/internal/extract"
	"github.com/mmynk/moneymate/internal/metrics"
	"github.com/mmynk/moneymate/internal/middleware"
	"github.com/mmynk/moneymate/internal/storage/sqlite"
	"github.com/mmynk/moneymate/pkg/api"
)

// testEnv is a running server with clients for every service.
type testEnv struct {
	server   *httptest.Server
	store    *sqlite.SQLiteStore
	jwt      *auth.JWTManager
	sessions *api.SessionServiceClient
	receipts *api.ReceiptServiceClient
	auth     *api.AuthServiceClient
	receipt  *ReceiptService
}

// setupTestServer mounts all services on a temp-file SQLite store, wired the
// way the server binary wires them.
func setupTestServer(t *testing.T, extractor extract.Extractor) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New()
	interceptors := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.MetricsInterceptor(m),
	)

	if extractor == nil {
		extractor = extract.Canned{}
	}
	receiptSvc := NewReceiptService(extractor, m, 5*time.Second, 1<<20)
	sessionSvc := NewSessionService(store)
	sessionSvc.now = func() time.Time { return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC) }
	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	mux.Handle(api.NewSessionServiceHandler(sessionSvc, interceptors))
	mux.Handle(api.NewReceiptServiceHandler(receiptSvc, interceptors))
	mux.Handle(api.NewAuthServiceHandler(authSvc, interceptors))
	mux.Handle("/api/analyze-receipt", receiptSvc)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		server:   server,
		store:    store,
		jwt:      jwtManager,
		sessions: api.NewSessionServiceClient(http.DefaultClient, server.URL),
		receipts: api.NewReceiptServiceClient(http.DefaultClient, server.URL),
		auth:     api.NewAuthServiceClient(http.DefaultClient, server.URL),
		receipt:  receiptSvc,
	}
}

// authed returns a request carrying a bearer token.
func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

// registerUser creates an account and returns its token.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "Test User",
		Password:    "password123",
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	return resp.Msg.Token
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), fmt.Sprintf("unexpected error: %v", err))
}
