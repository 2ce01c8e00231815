package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Daksh-create349/stock-Master/internal/infrastructure/gemini"
	"github.com/Daksh-create349/stock-Master/pkg/kafka"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
	"github.com/Daksh-create349/stock-Master/pkg/tracing"
)

func testConfig() *Config {
	return &Config{
		ServerAddr:        "127.0.0.1:0",
		Environment:       "test",
		GeofencingEnabled: false,
		NotificationTTL:   time.Second,
		DemoProducts:      5,
		DemoContacts:      3,
		AI:                gemini.DefaultConfig(),
		Kafka:             kafka.DefaultConfig(),
		Tracing:           tracing.DefaultConfig(serviceName),
	}
}

func call(t *testing.T, a *app, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("GEOFENCING_ENABLED", "false")
	t.Setenv("NOTIFICATION_TTL", "2s")
	t.Setenv("SEED_DEMO_PRODUCTS", "12")
	t.Setenv("SEED_DEMO_CONTACTS", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ,http://localhost:3000")

	config := loadConfig()

	assert.Equal(t, ":9090", config.ServerAddr)
	assert.False(t, config.GeofencingEnabled)
	assert.Equal(t, 2*time.Second, config.NotificationTTL)
	assert.Equal(t, 12, config.DemoProducts)
	assert.Equal(t, 80, config.DemoContacts)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, config.AI.Timeout)
	assert.Equal(t, gemini.DefaultModel, config.AI.Model)
	assert.False(t, config.KafkaEnabled)
	assert.False(t, config.Tracing.Enabled)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, config.CORSOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"GEOFENCING_ENABLED", "SERVER_ADDR", "KAFKA_ENABLED", "TRACING_ENABLED", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	config := loadConfig()

	assert.False(t, config.GeofencingEnabled)
	assert.Equal(t, ":8080", config.ServerAddr)
	assert.Equal(t, 5*time.Second, config.NotificationTTL)
	assert.Empty(t, config.CORSOrigins)
}

func TestBuild_DefaultConfigDoesNotGeofence(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Setenv("GEOFENCING_ENABLED", "")
	config := loadConfig()
	config.DemoProducts, config.DemoContacts = 5, 3
	config.AI.APIKey = ""

	a, err := build(context.Background(), config, logging.Discard(), nil)
	require.NoError(t, err)
	defer a.close()

	w, body := call(t, a, http.MethodPut, "/api/v1/settings", map[string]any{
		"userLocation": map[string]any{"lat": 19.07, "lng": 72.87},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["geofencingEnabled"])

	w, body = call(t, a, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	productID := body["data"].([]any)[0].(map[string]any)["id"].(string)

	w, body = call(t, a, http.MethodPost, "/api/v1/operations", map[string]any{
		"type":  "Receipt",
		"items": []map[string]any{{"productId": productID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = call(t, a, http.MethodPost, "/api/v1/operations/"+body["id"].(string)+"/validate", nil)
	require.Equal(t, http.StatusOK, w.Code, "validation should not be geofenced by default")
	assert.Equal(t, "Done", body["status"])
}

func TestBuild_ServesSeededInventory(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	a, err := build(ctx, testConfig(), logging.Discard(), metrics.New(metrics.DefaultConfig(serviceName)))
	require.NoError(t, err)
	defer a.close()

	w, _ := call(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, a, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := call(t, a, http.MethodGet, "/api/v1/products?pageSize=200", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, body["totalItems"], float64(5))

	w, body = call(t, a, http.MethodPost, "/api/v1/session", map[string]any{
		"email": "manager@stockmaster.example", "password": "demo",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["warehouse"])

	w, _ = call(t, a, http.MethodGet, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = call(t, a, http.MethodPost, "/api/v1/assistant/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["summary"], "API Key is missing")

	w, _ = call(t, a, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, a, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuild_ValidateFlow(t *testing.T) {
	defer goleak.VerifyNone(t)

	a, err := build(context.Background(), testConfig(), logging.Discard(), nil)
	require.NoError(t, err)
	defer a.close()

	w, body := call(t, a, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := body["data"].([]any)[0].(map[string]any)
	productID := first["id"].(string)
	stock := first["stock"].(float64)

	w, body = call(t, a, http.MethodPost, "/api/v1/operations", map[string]any{
		"type":  "Receipt",
		"items": []map[string]any{{"productId": productID, "quantity": 7}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	opID := body["id"].(string)

	w, body = call(t, a, http.MethodPost, "/api/v1/operations/"+opID+"/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Done", body["status"])

	w, body = call(t, a, http.MethodGet, "/api/v1/products/"+productID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stock+7, body["stock"])

	w, _ = call(t, a, http.MethodPost, "/api/v1/operations/"+opID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRun_GracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(), logging.Discard(), ready) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + addr + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
