package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestExecuteDbOperation(t *testing.T) {
	t.Run("success passes the result through", func(t *testing.T) {
		calls := 0
		result, err := ExecuteDbOperation(func() (interface{}, error) {
			calls++
			return "ok", nil
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("retryable network error is retried", func(t *testing.T) {
		calls := 0
		result, err := ExecuteDbOperation(func() (interface{}, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection refused")
			}
			return "ok", nil
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error returns immediately", func(t *testing.T) {
		calls := 0
		opErr := errors.New("E11000 duplicate key")
		_, err := ExecuteDbOperation(func() (interface{}, error) {
			calls++
			return nil, opErr
		}, 3)
		require.ErrorIs(t, err, opErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries exhausted returns the last error", func(t *testing.T) {
		calls := 0
		_, err := ExecuteDbOperation(func() (interface{}, error) {
			calls++
			return nil, errors.New("no reachable servers")
		}, 2)
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(mongo.CommandError{Code: 189}))
	assert.False(t, isRetryableError(mongo.CommandError{Code: 11000}))
	assert.True(t, isRetryableError(errors.New("server selection error: context deadline exceeded")))
	assert.False(t, isRetryableError(errors.New("document validation failure")))
}
