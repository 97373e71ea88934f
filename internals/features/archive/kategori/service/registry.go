package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"

	"arsipku_backend/internals/features/archive/kategori/dto"
	"arsipku_backend/internals/features/archive/kategori/model"
	helper "arsipku_backend/internals/helpers"
	"arsipku_backend/internals/helpers/storage"
)

const (
	detailTTL = 5 * time.Minute
	listTTL   = 1 * time.Minute
	cacheSize = 256
)

// ListResult adalah hasil list kategori yang ikut di-cache (TTL pendek).
type ListResult struct {
	Items []model.KategoriModel `json:"items"`
	Meta  helper.Meta           `json:"meta"`
}

// KategoriRegistry adalah read-through cache di atas tabel kategoris dan
// satu-satunya sumber policy validasi/enkripsi per kategori.
// Lookup detail/slug TTL 5 menit, list TTL 1 menit; setiap mutasi melakukan
// invalidasi eksplisit sebelum return supaya policy basi tidak terbaca
// lebih lama dari TTL yang sedang in-flight.
type KategoriRegistry struct {
	DB    *gorm.DB
	Vault *storage.Vault

	details *expirable.LRU[string, *model.KategoriModel]
	lists   *expirable.LRU[string, *ListResult]
}

func NewKategoriRegistry(db *gorm.DB, vault *storage.Vault) *KategoriRegistry {
	return &KategoriRegistry{
		DB:      db,
		Vault:   vault,
		details: expirable.NewLRU[string, *model.KategoriModel](cacheSize, nil, detailTTL),
		lists:   expirable.NewLRU[string, *ListResult](cacheSize, nil, listTTL),
	}
}

func detailKey(id uint) string   { return fmt.Sprintf("kategori_detail_%d", id) }
func slugKey(slug string) string { return "kategori_slug_" + slug }

// FindByID — read-through, 404 kalau kategori tidak ada.
func (r *KategoriRegistry) FindByID(id uint) (*model.KategoriModel, error) {
	if cached, ok := r.details.Get(detailKey(id)); ok {
		return cached, nil
	}

	var kategori model.KategoriModel
	if err := r.DB.First(&kategori, id).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}

	r.details.Add(detailKey(id), &kategori)
	return &kategori, nil
}

// FindBySlug — read-through berdasarkan slug URL-safe.
func (r *KategoriRegistry) FindBySlug(slug string) (*model.KategoriModel, error) {
	if cached, ok := r.details.Get(slugKey(slug)); ok {
		return cached, nil
	}

	var kategori model.KategoriModel
	if err := r.DB.Where("slug = ?", slug).First(&kategori).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}

	r.details.Add(slugKey(slug), &kategori)
	return &kategori, nil
}

var kategoriSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// FindAll — list kategori dengan pagination/search, cache key dari parameter lookup.
func (r *KategoriRegistry) FindAll(req dto.FindAllKategoriRequest, p helper.Params) (*ListResult, error) {
	cacheKey := fmt.Sprintf("kategori_list_%d_%d_%s_%s_%s",
		p.Page, p.PerPage, strings.ToLower(req.Search), p.SortBy, p.SortOrder)
	if cached, ok := r.lists.Get(cacheKey); ok {
		return cached, nil
	}

	q := r.DB.Model(&model.KategoriModel{})
	if s := strings.TrimSpace(req.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}

	order, err := p.SafeOrderClause(kategoriSortColumns, "id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kolom sort tidak valid")
	}

	var items []model.KategoriModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&items).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}

	result := &ListResult{Items: items, Meta: helper.BuildMeta(total, p)}
	r.lists.Add(cacheKey, result)
	return result, nil
}

// Invalidate membuang entry detail satu kategori (id + slug) dari cache.
func (r *KategoriRegistry) Invalidate(id uint, slug string) {
	r.details.Remove(detailKey(id))
	if slug != "" {
		r.details.Remove(slugKey(slug))
	}
}

// InvalidateAll mengosongkan seluruh cache (detail + list).
func (r *KategoriRegistry) InvalidateAll() {
	r.details.Purge()
	r.lists.Purge()
}
