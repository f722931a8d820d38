package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestErrorName(t *testing.T) {
	attr := logger.ErrorName("not_found")
	require.Equal(t, "error_name", attr.Key)
	assert.Equal(t, "not_found", attr.Value.String())

	assert.True(t, logger.ErrorName("").Equal(slog.Attr{}))
}

func TestErrorClass(t *testing.T) {
	attr := logger.ErrorClass("params.PresenceError")
	require.Equal(t, "error_class", attr.Key)
	assert.Equal(t, "params.PresenceError", attr.Value.String())

	assert.True(t, logger.ErrorClass("").Equal(slog.Attr{}))
}

func TestStatus(t *testing.T) {
	attr := logger.Status(404)
	require.Equal(t, "status", attr.Key)
	assert.Equal(t, int64(404), attr.Value.Int64())
}

func TestParam(t *testing.T) {
	attr := logger.Param("user[age]")
	require.Equal(t, "param", attr.Key)
	assert.Equal(t, "user[age]", attr.Value.String())
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.Any())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
