package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContext(target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestQueryInt(t *testing.T) {
	t.Run("absent parameter falls back to the default", func(t *testing.T) {
		// Given
		c := newQueryContext("/x")

		// When
		got, err := queryInt(c, "limit", 50)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 50, got)
	})

	t.Run("present parameter is bound", func(t *testing.T) {
		// Given
		c := newQueryContext("/x?limit=7")

		// When
		got, err := queryInt(c, "limit", 50)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("zero is kept rather than replaced by the default", func(t *testing.T) {
		got, err := queryInt(newQueryContext("/x?limit=0"), "limit", 50)

		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("non numeric value is invalid", func(t *testing.T) {
		_, err := queryInt(newQueryContext("/x?limit=ten"), "limit", 50)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{name: "absent", target: "/x", want: false},
		{name: "true", target: "/x?include_finished=true", want: true},
		{name: "false", target: "/x?include_finished=false", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := queryBool(newQueryContext(tt.target), "include_finished")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed value is invalid", func(t *testing.T) {
		_, err := queryBool(newQueryContext("/x?include_finished=maybe"), "include_finished")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
