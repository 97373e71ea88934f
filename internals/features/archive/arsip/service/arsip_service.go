package service

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"arsipku_backend/internals/features/archive/arsip/dto"
	"arsipku_backend/internals/features/archive/arsip/model"
	"arsipku_backend/internals/features/archive/arsip/rules"
	kategoriModel "arsipku_backend/internals/features/archive/kategori/model"
	kategoriService "arsipku_backend/internals/features/archive/kategori/service"
	userModel "arsipku_backend/internals/features/users/model"
	helper "arsipku_backend/internals/helpers"
	"arsipku_backend/internals/helpers/cipher"
	"arsipku_backend/internals/helpers/storage"
)

// UploadedFile adalah file multipart yang sudah dibaca ke memori oleh
// controller. Service tidak menyentuh *multipart.FileHeader langsung
// supaya gampang dites.
type UploadedFile struct {
	Name string
	Data []byte
}

// ArsipService mengorkestrasi create/read/update/delete arsip:
// registry kategori → rules engine → cipher → vault → transaksi DB.
// Batas transaksi di service ini; tulisan disk di luar transaksi dan
// dikompensasi manual kalau step database gagal.
type ArsipService struct {
	DB       *gorm.DB
	Registry *kategoriService.KategoriRegistry
	Cipher   *cipher.Service
	Vault    *storage.Vault
}

func NewArsipService(db *gorm.DB, registry *kategoriService.KategoriRegistry, ciph *cipher.Service, vault *storage.Vault) *ArsipService {
	return &ArsipService{DB: db, Registry: registry, Cipher: ciph, Vault: vault}
}

// dupChecker membangun pengecekan duplikat compound key untuk rules engine.
func (s *ArsipService) dupChecker(db *gorm.DB) rules.DupChecker {
	return func(q rules.DupQuery) (bool, error) {
		query := db.Model(&model.ArsipModel{}).
			Where("id_kategori = ? AND no = ?", q.KategoriID, q.No)
		if q.Tanggal != nil {
			query = query.Where("tanggal = ?", *q.Tanggal)
		}
		if q.NoFisik != "" {
			query = query.Where("no_fisik = ?", q.NoFisik)
		}
		if q.ExcludeID != 0 {
			query = query.Where("id <> ?", q.ExcludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, helper.TranslateDBError(err, "Arsip")
		}
		return count > 0, nil
	}
}

// encryptPreset mengembalikan bytes terenkripsi kalau gerbang enkripsi
// terbuka: kategori is_encrypt aktif DAN isi file benar-benar JPEG
// (sniff konten, bukan header client). Selain itu nil → simpan raw.
func (s *ArsipService) encryptPreset(kategori *kategoriModel.KategoriModel, f UploadedFile) ([]byte, error) {
	if !kategori.IsEncrypt || !storage.IsJPEGBytes(f.Data) {
		return nil, nil
	}
	enc, err := s.Cipher.EncryptBuffer(f.Data)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gagal mengenkripsi file "+f.Name)
	}
	return enc, nil
}

// sealNo menghasilkan pasangan envelope + hash untuk nilai no.
func (s *ArsipService) sealNo(no string) (datatypes.JSON, string, error) {
	env, err := s.Cipher.EncryptValue(no)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Nomor tidak boleh kosong")
	}
	raw, err := sonic.Marshal(env)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal menyusun envelope enkripsi")
	}
	hash, err := s.Cipher.HashValue(no)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Nomor tidak boleh kosong")
	}
	return datatypes.JSON(raw), hash, nil
}

// cleanupFiles menghapus file yang terlanjur tertulis ke disk saat
// transaksi gagal. Best effort — kegagalan hanya dicatat.
func (s *ArsipService) cleanupFiles(paths []string) {
	for _, p := range paths {
		if err := s.Vault.Delete(p); err != nil {
			log.Printf("[WARN] Gagal membersihkan file %s: %v", p, err)
		}
	}
}

// Create membuat arsip baru + attachment-nya dalam satu transaksi DB.
func (s *ArsipService) Create(req dto.CreateArsipRequest, files []UploadedFile, userID uint) (*dto.ArsipResponse, error) {
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Minimal satu file wajib diunggah")
	}

	tanggal, err := dto.ParseTanggal(req.Tanggal)
	if err != nil {
		return nil, err
	}

	kategori, err := s.Registry.FindByID(req.IDKategori)
	if err != nil {
		return nil, err
	}

	input := rules.Input{No: req.No, Nama: req.Nama, Tanggal: tanggal, NoFisik: req.NoFisik}
	if err := rules.Validate(kategori, input, 0, len(files), 0, s.dupChecker(s.DB)); err != nil {
		return nil, err
	}

	subfolder := storage.ArsipSubfolder(req.IDKategori, tanggal, req.NoFisik)

	var written []string
	fileRows := make([]model.ArsipFileModel, 0, len(files))
	for _, f := range files {
		preset, err := s.encryptPreset(kategori, f)
		if err != nil {
			s.cleanupFiles(written)
			return nil, err
		}
		relPath, err := s.Vault.Store(f.Data, f.Name, subfolder, preset)
		if err != nil {
			s.cleanupFiles(written)
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan file")
		}
		written = append(written, relPath)
		fileRows = append(fileRows, model.ArsipFileModel{
			OriginalName: f.Name,
			Path:         relPath,
			UploadByID:   userID,
		})
	}

	noEnc, noHash, err := s.sealNo(req.No)
	if err != nil {
		s.cleanupFiles(written)
		return nil, err
	}

	arsip := model.ArsipModel{
		IDKategori:  req.IDKategori,
		No:          req.No,
		NoEnc:       noEnc,
		NoHash:      noHash,
		Nama:        req.Nama,
		Tanggal:     tanggal,
		NoFisik:     req.NoFisik,
		CreatedByID: userID,
		ArsipFiles:  fileRows,
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&arsip).Error
	}); err != nil {
		// Transaksi DB rollback sendiri; tulisan disk harus dikompensasi manual.
		s.cleanupFiles(written)
		return nil, helper.TranslateDBError(err, "Arsip")
	}

	return s.FindOne(arsip.ID)
}

// CreateBySlug — create dengan resolve kategori lewat slug URL.
func (s *ArsipService) CreateBySlug(slug string, req dto.CreateArsipRequest, files []UploadedFile, userID uint) (*dto.ArsipResponse, error) {
	kategori, err := s.Registry.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	req.IDKategori = kategori.ID
	return s.Create(req, files, userID)
}

var arsipSortColumns = map[string]string{
	"id":         "id",
	"no":         "no",
	"nama":       "nama",
	"no_fisik":   "no_fisik",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// FindAll — list arsip. Search menjangkau mirror plaintext (ILIKE) dan
// no_hash (equality HMAC) supaya nomor tetap ketemu walau tersimpan
// terenkripsi. createdByID > 0 membatasi ke arsip milik user tsb.
func (s *ArsipService) FindAll(req dto.FindAllArsipRequest, p helper.Params, createdByID uint) ([]dto.ArsipResponse, helper.Meta, error) {
	q := s.DB.Model(&model.ArsipModel{})

	if createdByID > 0 {
		q = q.Where("created_by_id = ?", createdByID)
	}
	if req.KategoriID > 0 {
		q = q.Where("id_kategori = ?", req.KategoriID)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		if hash, err := s.Cipher.HashValue(req.Search); err == nil {
			q = q.Where("no ILIKE ? OR no_fisik ILIKE ? OR nama ILIKE ? OR no_hash = ?", like, like, like, hash)
		} else {
			q = q.Where("no ILIKE ? OR no_fisik ILIKE ? OR nama ILIKE ?", like, like, like)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, helper.Meta{}, helper.TranslateDBError(err, "Arsip")
	}

	order, err := p.SafeOrderClause(arsipSortColumns, "id")
	if err != nil {
		return nil, helper.Meta{}, fiber.NewError(fiber.StatusBadRequest, "Kolom sort tidak valid")
	}

	var items []model.ArsipModel
	if err := q.Preload("ArsipFiles", func(db *gorm.DB) *gorm.DB {
		return db.Order("arsip_files.id ASC")
	}).Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&items).Error; err != nil {
		return nil, helper.Meta{}, helper.TranslateDBError(err, "Arsip")
	}

	return dto.FromModels(items, s.Cipher), helper.BuildMeta(total, p), nil
}

// FindOne — detail arsip + file terurut id, hasil sudah dibersihkan.
func (s *ArsipService) FindOne(id uint) (*dto.ArsipResponse, error) {
	var arsip model.ArsipModel
	if err := s.DB.Preload("ArsipFiles", func(db *gorm.DB) *gorm.DB {
		return db.Order("arsip_files.id ASC")
	}).First(&arsip, id).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Arsip")
	}
	resp := dto.FromModel(&arsip, s.Cipher)
	return &resp, nil
}

// authorizeMutation: pemilik boleh mutasi arsipnya sendiri, ADMIN boleh semua.
func authorizeMutation(createdByID, userID uint, role string) error {
	if role == userModel.RoleAdmin {
		return nil
	}
	if createdByID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Anda hanya dapat mengubah arsip milik Anda sendiri")
	}
	return nil
}
