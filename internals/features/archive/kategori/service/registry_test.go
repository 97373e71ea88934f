package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arsipku_backend/internals/features/archive/kategori/model"
	helper "arsipku_backend/internals/helpers"
)

// Registry tanpa DB: entry di-seed langsung ke cache, sehingga jalur
// cache-hit dan invalidasi bisa diuji tanpa koneksi database — FindByID /
// FindBySlug tidak boleh menyentuh DB selama entry masih hidup.
func seededRegistry() (*KategoriRegistry, *model.KategoriModel) {
	r := NewKategoriRegistry(nil, nil)
	k := &model.KategoriModel{ID: 7, Name: "Akta Kelahiran", Slug: "akta-kelahiran", MaxFile: 2}
	r.details.Add(detailKey(k.ID), k)
	r.details.Add(slugKey(k.Slug), k)
	return r, k
}

func TestRegistry_CacheHitSkipsDB(t *testing.T) {
	r, k := seededRegistry()

	got, err := r.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, k, got)

	got, err = r.FindBySlug("akta-kelahiran")
	require.NoError(t, err)
	assert.Equal(t, k, got)
}

func TestRegistry_InvalidateEvictsDetailAndSlug(t *testing.T) {
	r, k := seededRegistry()

	r.Invalidate(k.ID, k.Slug)

	_, ok := r.details.Get(detailKey(k.ID))
	assert.False(t, ok, "entry detail harus hilang setelah invalidasi")
	_, ok = r.details.Get(slugKey(k.Slug))
	assert.False(t, ok, "entry slug harus hilang setelah invalidasi")
}

func TestRegistry_InvalidateAllPurgesLists(t *testing.T) {
	r, k := seededRegistry()
	r.lists.Add("kategori_list_1_20___desc", &ListResult{
		Items: []model.KategoriModel{*k},
		Meta:  helper.Meta{Total: 1},
	})

	r.InvalidateAll()

	assert.Zero(t, r.details.Len(), "cache detail harus kosong")
	assert.Zero(t, r.lists.Len(), "cache list harus kosong")
}
