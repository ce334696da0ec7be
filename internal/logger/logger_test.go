package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-1")
	CtxInfo(ctx, "property approved", "property_id", "p-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "property approved", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "p-1", entry["property_id"])
}

func TestInitWithWriter_TestLevelDropsInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	t.Cleanup(func() { Init("test") })

	Info("quiet")
	assert.Empty(t, buf.String())

	Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}
