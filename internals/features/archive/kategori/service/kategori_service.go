package service

import (
	"log"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	arsipModel "arsipku_backend/internals/features/archive/arsip/model"
	"arsipku_backend/internals/features/archive/kategori/dto"
	"arsipku_backend/internals/features/archive/kategori/model"
	userModel "arsipku_backend/internals/features/users/model"
	helper "arsipku_backend/internals/helpers"
)

// warnInvalidRegex: regex kategori yang tidak valid tidak menolak konfigurasi
// (perilaku lama dipertahankan, lihat DESIGN.md), tapi minimal tercatat di log
// sejak kategori ditulis, bukan baru ketahuan saat validasi arsip.
func warnInvalidRegex(pattern *string) {
	if pattern == nil || *pattern == "" {
		return
	}
	if _, err := regexp.Compile(*pattern); err != nil {
		log.Printf("[WARN] Regex kategori tidak valid dan akan di-skip saat validasi: %q (%v)", *pattern, err)
	}
}

// Create membuat kategori baru. Slug diturunkan dari nama; tabrakan slug
// adalah error validasi, tidak di-dedup diam-diam.
func (r *KategoriRegistry) Create(req dto.CreateKategoriRequest) (*model.KategoriModel, error) {
	slug := helper.GenerateSlug(req.Name)
	if slug == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama kategori tidak valid")
	}

	var count int64
	if err := r.DB.Model(&model.KategoriModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kategori dengan nama tersebut sudah ada")
	}

	rulesFormNo := true
	if req.RulesFormNo != nil {
		rulesFormNo = *req.RulesFormNo
	}
	noType := req.NoType
	if noType == "" {
		noType = model.NoTypeAlphanumeric
	}
	uniqueConstraint := req.UniqueConstraint
	if uniqueConstraint == "" {
		uniqueConstraint = model.UniqueNone
	}
	warnInvalidRegex(req.NoRegex)

	kategori := model.KategoriModel{
		Name:             req.Name,
		Slug:             slug,
		Description:      req.Description,
		FormNo:           req.FormNo,
		RulesFormNo:      rulesFormNo,
		RulesFormNama:    req.RulesFormNama,
		RulesFormTanggal: req.RulesFormTanggal,
		MaxFile:          req.MaxFile,
		IsEncrypt:        req.IsEncrypt,
		NoType:           noType,
		NoMinLength:      req.NoMinLength,
		NoMaxLength:      req.NoMaxLength,
		NoRegex:          req.NoRegex,
		NoPrefix:         req.NoPrefix,
		NoFormat:         req.NoFormat,
		NoMask:           req.NoMask,
		UniqueConstraint: uniqueConstraint,
	}

	if err := r.DB.Create(&kategori).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}

	r.InvalidateAll()
	return &kategori, nil
}

// Update partial update kategori; slug tidak pernah diubah setelah dibuat.
func (r *KategoriRegistry) Update(id uint, req dto.UpdateKategoriRequest) (*model.KategoriModel, error) {
	var kategori model.KategoriModel
	if err := r.DB.First(&kategori, id).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Kategori")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.FormNo != nil {
		updates["form_no"] = *req.FormNo
	}
	if req.RulesFormNo != nil {
		updates["rules_form_no"] = *req.RulesFormNo
	}
	if req.RulesFormNama != nil {
		updates["rules_form_nama"] = *req.RulesFormNama
	}
	if req.RulesFormTanggal != nil {
		updates["rules_form_tanggal"] = *req.RulesFormTanggal
	}
	if req.MaxFile != nil {
		updates["max_file"] = *req.MaxFile
	}
	if req.IsEncrypt != nil {
		updates["is_encrypt"] = *req.IsEncrypt
	}
	if req.NoType != nil {
		updates["no_type"] = *req.NoType
	}
	if req.NoMinLength != nil {
		updates["no_min_length"] = *req.NoMinLength
	}
	if req.NoMaxLength != nil {
		updates["no_max_length"] = *req.NoMaxLength
	}
	if req.NoRegex != nil {
		warnInvalidRegex(req.NoRegex)
		updates["no_regex"] = *req.NoRegex
	}
	if req.NoPrefix != nil {
		updates["no_prefix"] = *req.NoPrefix
	}
	if req.NoFormat != nil {
		updates["no_format"] = *req.NoFormat
	}
	if req.NoMask != nil {
		updates["no_mask"] = *req.NoMask
	}
	if req.UniqueConstraint != nil {
		updates["unique_constraint"] = *req.UniqueConstraint
	}

	if len(updates) > 0 {
		if err := r.DB.Model(&kategori).Updates(updates).Error; err != nil {
			return nil, helper.TranslateDBError(err, "Kategori")
		}
	}

	// Evict sebelum return — mutasi tidak menunggu TTL.
	r.Invalidate(id, kategori.Slug)
	r.InvalidateAll()
	return &kategori, nil
}

// Delete menghapus kategori beserta seluruh arsip + file-nya.
// Butuh konfirmasi password user pemanggil. File fisik dihapus dari disk dulu,
// baru row database (cascade FK membereskan arsip_semuas & arsip_files).
func (r *KategoriRegistry) Delete(id uint, password string, userID uint) error {
	if password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Password konfirmasi diperlukan")
	}

	var user userModel.UserModel
	if err := r.DB.First(&user, userID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Password salah")
	}

	var kategori model.KategoriModel
	if err := r.DB.First(&kategori, id).Error; err != nil {
		return helper.TranslateDBError(err, "Kategori")
	}

	// Kumpulkan path file fisik milik semua arsip kategori ini.
	var paths []string
	if err := r.DB.Model(&arsipModel.ArsipFileModel{}).
		Joins("JOIN arsip_semuas ON arsip_semuas.id = arsip_files.id_arsip").
		Where("arsip_semuas.id_kategori = ?", id).
		Pluck("arsip_files.path", &paths).Error; err != nil {
		return helper.TranslateDBError(err, "Kategori")
	}

	for _, p := range paths {
		if err := r.Vault.Delete(p); err != nil {
			log.Printf("[ERROR] Gagal menghapus file fisik %s: %v", p, err)
		}
	}

	if err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_arsip IN (?)",
			tx.Model(&arsipModel.ArsipModel{}).Select("id").Where("id_kategori = ?", id),
		).Delete(&arsipModel.ArsipFileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_kategori = ?", id).Delete(&arsipModel.ArsipModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&kategori).Error
	}); err != nil {
		return helper.TranslateDBError(err, "Kategori")
	}

	r.Invalidate(id, kategori.Slug)
	r.InvalidateAll()
	return nil
}
