package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"billboard-hub-backend/config"
	"billboard-hub-backend/internal/app"
	"billboard-hub-backend/internal/catalog"
	"billboard-hub-backend/internal/notification"
	"billboard-hub-backend/internal/session"
	"billboard-hub-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full API over an in-memory blob store.
func newTestRouter(t *testing.T) (*gin.Engine, *notification.SubscriptionStore) {
	t.Helper()
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	cfg := config.Default()
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	state := app.New(
		catalog.New(ctx, blobs, store.KeyBillboards),
		session.NewManager(ctx, blobs, store.KeyUser),
		cfg.Map,
		nil,
	)
	subs := notification.NewSubscriptionStore(blobs, store.KeyPushSubscriptions)
	handler := NewHandler(state, subs, &webpush.Options{VAPIDPublicKey: "test-public-key"})
	return NewRouter(handler, cfg.Server), subs
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
