package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewSchemaError("header matches no known schema", nil),
			want: "[SCHEMA] header matches no known schema",
		},
		{
			name: "with cause",
			err:  NewStorageError("create report file", stderrors.New("permission denied")),
			want: "[STORAGE] create report file: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := NewParsingError("parse row", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestIsType(t *testing.T) {
	schemaErr := NewSchemaError("unrecognized header", nil)
	wrapped := fmt.Errorf("load failed: %w", schemaErr)

	assert.True(t, IsType(schemaErr, ErrTypeSchema))
	assert.True(t, IsType(wrapped, ErrTypeSchema))
	assert.False(t, IsType(wrapped, ErrTypeStorage))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeSchema))

	assert.True(t, IsSchemaError(wrapped))
	assert.False(t, IsSchemaError(NewConfigError("bad config", nil)))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("bad date expression", nil).
		WithContext("row", 7).
		WithContext("expression", "13/45")

	require.NotNil(t, err.Context)
	assert.Equal(t, 7, err.Context["row"])
	assert.Equal(t, "13/45", err.Context["expression"])
}
