package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelInfo, ServiceName: "stock-master", Environment: "test", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUser(ctx, "alice")
	logger.WithContext(ctx).WithOperation("op1", "WH/IN/0001").Info("validated")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "stock-master", record["service"])
	assert.Equal(t, "req-1", record["requestId"])
	assert.Equal(t, "alice", record["user"])
	assert.Equal(t, "WH/IN/0001", record["reference"])
}

func TestLogger_AuditFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{ServiceName: "stock-master", Output: &buf})

	ctx := ContextWithUser(context.Background(), "alice")
	logger.Audit(ctx, "stock.set", "product", "p1", map[string]any{"newStock": 10})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Audit event", record["msg"])
	assert.Equal(t, "stock.set", record["auditAction"])
	assert.EqualValues(t, 10, record["newStock"])
	assert.Equal(t, "alice", record["actor"])
}
