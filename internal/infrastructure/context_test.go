package infrastructure

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, GenerateTraceID())
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", GetTraceID(ctx))
}

func TestGetTraceID_Missing(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	first := GetTraceID(ctx)
	require.NotEmpty(t, first)

	// a second call keeps the existing ID
	ctx = EnsureTraceID(ctx)
	assert.Equal(t, first, GetTraceID(ctx))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"nonsense", "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in).String())
		})
	}
}
