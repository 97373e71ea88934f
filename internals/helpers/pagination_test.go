package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsLimitOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 20}
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 40, p.Offset())
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{"id": "id", "name": "name"}

	t.Run("whitelisted column", func(t *testing.T) {
		p := Params{SortBy: "name", SortOrder: "asc"}
		order, err := p.SafeOrderClause(allowed, "id")
		require.NoError(t, err)
		assert.Equal(t, "name ASC", order)
	})

	t.Run("unknown column falls back to default", func(t *testing.T) {
		p := Params{SortBy: "no; DROP TABLE arsip_semuas", SortOrder: "desc"}
		order, err := p.SafeOrderClause(allowed, "id")
		require.NoError(t, err)
		assert.Equal(t, "id DESC", order)
	})

	t.Run("direction defaults to desc", func(t *testing.T) {
		p := Params{SortBy: "id", SortOrder: "sideways"}
		order, err := p.SafeOrderClause(allowed, "id")
		require.NoError(t, err)
		assert.Equal(t, "id DESC", order)
	})

	t.Run("missing default key is an error", func(t *testing.T) {
		p := Params{SortBy: "nope"}
		_, err := p.SafeOrderClause(map[string]string{}, "id")
		assert.Error(t, err)
	})
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(45, Params{Page: 2, PerPage: 20})
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)

	empty := BuildMeta(0, Params{Page: 1, PerPage: 20})
	assert.Equal(t, 0, empty.TotalPages)
}
