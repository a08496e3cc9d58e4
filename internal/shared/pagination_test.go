package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := NewPagination(10, 2, 10, 25)
		require.Equal(t, 2, p.Page)
		require.Equal(t, 10, p.Limit)
		require.Equal(t, 3, p.TotalPages)
		require.True(t, p.HasNext)
		require.True(t, p.HasPrev)
	})

	t.Run("first page", func(t *testing.T) {
		p := NewPagination(0, 1, 10, 25)
		require.Equal(t, 3, p.TotalPages)
		require.True(t, p.HasNext)
		require.False(t, p.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPagination(20, 3, 10, 25)
		require.False(t, p.HasNext)
		require.True(t, p.HasPrev)
	})

	t.Run("empty listing", func(t *testing.T) {
		p := NewPagination(0, 1, 10, 0)
		require.Equal(t, 0, p.TotalPages)
		require.False(t, p.HasNext)
		require.False(t, p.HasPrev)
	})

	t.Run("exact fit", func(t *testing.T) {
		p := NewPagination(10, 2, 10, 20)
		require.Equal(t, 2, p.TotalPages)
		require.False(t, p.HasNext)
	})
}

func TestParseListQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?page=3&limit=20", nil)
		q, ok := ParseListQuery(r)
		require.True(t, ok)
		require.Equal(t, 3, q.Page)
		require.Equal(t, 20, q.Limit)
		require.Equal(t, 40, q.StartIndex)
	})

	t.Run("missing params", func(t *testing.T) {
		for _, target := range []string{"/", "/?page=1", "/?limit=10"} {
			r := httptest.NewRequest("GET", target, nil)
			_, ok := ParseListQuery(r)
			require.False(t, ok, target)
		}
	})

	t.Run("non numeric and non positive", func(t *testing.T) {
		for _, target := range []string{"/?page=abc&limit=10", "/?page=0&limit=10", "/?page=1&limit=-5"} {
			r := httptest.NewRequest("GET", target, nil)
			_, ok := ParseListQuery(r)
			require.False(t, ok, target)
		}
	})
}
