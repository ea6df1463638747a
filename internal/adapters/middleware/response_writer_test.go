package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 200 when only the body is written", func(t *testing.T) {
		t.Parallel()

		rec := NewStatusRecorder(httptest.NewRecorder())

		n, err := rec.Write([]byte("accepted"))
		require.NoError(t, err)

		assert.Equal(t, 8, n)
		assert.Equal(t, http.StatusOK, rec.StatusCode())
		assert.Equal(t, int64(8), rec.BytesWritten())
	})

	t.Run("keeps the first status code", func(t *testing.T) {
		t.Parallel()

		underlying := httptest.NewRecorder()
		rec := NewStatusRecorder(underlying)

		rec.WriteHeader(http.StatusAccepted)
		rec.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusAccepted, rec.StatusCode())
		assert.Equal(t, http.StatusAccepted, underlying.Code)
	})

	t.Run("ignores WriteHeader after the body started", func(t *testing.T) {
		t.Parallel()

		rec := NewStatusRecorder(httptest.NewRecorder())

		_, _ = rec.Write([]byte("{}"))
		rec.WriteHeader(http.StatusBadRequest)

		assert.Equal(t, http.StatusOK, rec.StatusCode())
	})

	t.Run("flushes the underlying writer", func(t *testing.T) {
		t.Parallel()

		underlying := httptest.NewRecorder()
		rec := NewStatusRecorder(underlying)

		rec.Flush()

		assert.True(t, underlying.Flushed)
	})

	t.Run("reports hijacking as unsupported", func(t *testing.T) {
		t.Parallel()

		rec := NewStatusRecorder(httptest.NewRecorder())

		_, _, err := rec.Hijack()

		assert.ErrorIs(t, err, http.ErrNotSupported)
	})

	t.Run("unwraps to the underlying writer", func(t *testing.T) {
		t.Parallel()

		underlying := httptest.NewRecorder()

		assert.Same(t, underlying, NewStatusRecorder(underlying).Unwrap())
	})
}
