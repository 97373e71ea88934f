package dto

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"arsipku_backend/internals/features/archive/arsip/model"
	"arsipku_backend/internals/helpers/cipher"
)

// CreateArsipRequest — payload multipart create arsip (field non-file).
type CreateArsipRequest struct {
	IDKategori uint    `form:"id_kategori" validate:"required"`
	No         string  `form:"no" validate:"required"`
	Nama       *string `form:"nama"`
	Tanggal    *string `form:"tanggal"` // YYYY-MM-DD
	NoFisik    string  `form:"no_fisik" validate:"required"`
}

// Normalize meniru transform DTO lama: trim + nama/noFisik di-uppercase.
func (r *CreateArsipRequest) Normalize() {
	r.No = strings.TrimSpace(r.No)
	r.NoFisik = strings.ToUpper(strings.TrimSpace(r.NoFisik))
	if r.Nama != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Nama))
		if v == "" {
			r.Nama = nil
		} else {
			r.Nama = &v
		}
	}
}

// CreateArsipBySlugRequest — payload create dengan kategori di-resolve dari
// slug URL; field dan constraint sama dengan CreateArsipRequest minus
// id_kategori.
type CreateArsipBySlugRequest struct {
	No      string  `form:"no" validate:"required"`
	Nama    *string `form:"nama"`
	Tanggal *string `form:"tanggal"` // YYYY-MM-DD
	NoFisik string  `form:"no_fisik" validate:"required"`
}

func (r *CreateArsipBySlugRequest) Normalize() {
	r.No = strings.TrimSpace(r.No)
	r.NoFisik = strings.ToUpper(strings.TrimSpace(r.NoFisik))
	if r.Nama != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Nama))
		if v == "" {
			r.Nama = nil
		} else {
			r.Nama = &v
		}
	}
}

// ToCreateRequest mengubah ke bentuk create biasa; id kategori diisi service
// setelah slug di-resolve.
func (r CreateArsipBySlugRequest) ToCreateRequest() CreateArsipRequest {
	return CreateArsipRequest{
		No:      r.No,
		Nama:    r.Nama,
		Tanggal: r.Tanggal,
		NoFisik: r.NoFisik,
	}
}

// UpdateArsipRequest — delta update; semua field opsional.
// FileIDs adalah daftar id attachment yang akan di-replace berpasangan
// dengan urutan file upload.
type UpdateArsipRequest struct {
	IDKategori *uint   `form:"id_kategori"`
	No         *string `form:"no"`
	Nama       *string `form:"nama"`
	Tanggal    *string `form:"tanggal"`
	NoFisik    *string `form:"no_fisik"`
	FileIDs    []uint  `form:"-"`
}

func (r *UpdateArsipRequest) Normalize() {
	if r.No != nil {
		v := strings.TrimSpace(*r.No)
		if v == "" {
			r.No = nil
		} else {
			r.No = &v
		}
	}
	if r.NoFisik != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.NoFisik))
		if v == "" {
			r.NoFisik = nil
		} else {
			r.NoFisik = &v
		}
	}
	if r.Nama != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Nama))
		if v == "" {
			r.Nama = nil
		} else {
			r.Nama = &v
		}
	}
}

// ParseTanggal menerima YYYY-MM-DD atau RFC3339.
func ParseTanggal(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid")
}

// ParseFileIDs membaca file_ids dari form multipart: boleh berulang
// (file_ids=1&file_ids=2) atau satu nilai dipisah koma ("1,2").
func ParseFileIDs(c *fiber.Ctx) ([]uint, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	var raws []string
	for _, key := range []string{"file_ids", "file_ids[]", "fileIds"} {
		if vals, ok := form.Value[key]; ok {
			raws = append(raws, vals...)
		}
	}

	var out []uint
	for _, raw := range raws {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "file_ids harus berupa angka")
			}
			out = append(out, uint(n))
		}
	}
	return out, nil
}

// FindAllArsipRequest — query list arsip.
type FindAllArsipRequest struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Search     string `query:"search"`
	SortBy     string `query:"sort_by"`
	SortOrder  string `query:"sort_order"`
	KategoriID uint   `query:"kategori_id"`
}

// ===============================
// Response shaping (decrypt & clean)
// ===============================

type ArsipFileResponse struct {
	ID           uint      `json:"id"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	UploadByID   uint      `json:"upload_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type ArsipResponse struct {
	ID          uint                `json:"id"`
	IDKategori  uint                `json:"id_kategori"`
	No          string              `json:"no"`
	Nama        *string             `json:"nama,omitempty"`
	Tanggal     *time.Time          `json:"tanggal,omitempty"`
	NoFisik     string              `json:"no_fisik"`
	CreatedByID uint                `json:"created_by_id"`
	IsSync      bool                `json:"is_sync"`
	SyncAt      *time.Time          `json:"sync_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
	Files       []ArsipFileResponse `json:"arsip_files"`
}

// FromModel membangun response bersih: envelope no_enc didekripsi jadi `no`,
// envelope & hash tidak pernah ikut keluar. Dekripsi yang gagal (kunci
// berubah / data korup) hanya dicatat di log — field jatuh ke mirror
// plaintext, request tetap sukses.
func FromModel(m *model.ArsipModel, ciph *cipher.Service) ArsipResponse {
	no := m.No
	if len(m.NoEnc) > 0 {
		var env cipher.ValueEnvelope
		if err := sonic.Unmarshal(m.NoEnc, &env); err != nil {
			log.Printf("[ERROR] Envelope no_enc arsip %d tidak valid: %v", m.ID, err)
		} else if plain, err := ciph.DecryptValue(env); err != nil {
			log.Printf("[ERROR] Gagal decrypt no_enc arsip %d: %v", m.ID, err)
		} else {
			no = plain
		}
	}

	files := make([]ArsipFileResponse, 0, len(m.ArsipFiles))
	for _, f := range m.ArsipFiles {
		files = append(files, ArsipFileResponse{
			ID:           f.ID,
			OriginalName: f.OriginalName,
			Path:         f.Path,
			UploadByID:   f.UploadByID,
			CreatedAt:    f.CreatedAt,
		})
	}

	return ArsipResponse{
		ID:          m.ID,
		IDKategori:  m.IDKategori,
		No:          no,
		Nama:        m.Nama,
		Tanggal:     m.Tanggal,
		NoFisik:     m.NoFisik,
		CreatedByID: m.CreatedByID,
		IsSync:      m.IsSync,
		SyncAt:      m.SyncAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Files:       files,
	}
}

func FromModels(ms []model.ArsipModel, ciph *cipher.Service) []ArsipResponse {
	out := make([]ArsipResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i], ciph))
	}
	return out
}
