package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSON_MergesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "daycare", Output: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Info("booking created", map[string]any{
		"booking_id": "b-1",
		"err":        errors.New("boom"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "daycare", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "b-1", entry["booking_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "booking created", entry["msg"])
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Info("ignored", nil)
	l.Warn("kept", map[string]any{"k": "v"})

	out := buf.String()
	assert.NotContains(t, out, "ignored")
	assert.True(t, strings.Contains(out, "msg=kept"))
	assert.True(t, strings.Contains(out, "k=v"))
}

func TestFromContext_Fallback(t *testing.T) {
	fallback := Nop()
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))

	var buf bytes.Buffer
	l := New(Options{Output: &buf})
	ctx := WithContext(context.Background(), l)
	assert.Equal(t, l, FromContext(ctx, fallback))
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat(""))
}
