package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"arsipku_backend/internals/features/archive/arsip/dto"
	"arsipku_backend/internals/features/archive/arsip/model"
	"arsipku_backend/internals/features/archive/arsip/rules"
	helper "arsipku_backend/internals/helpers"
	"arsipku_backend/internals/helpers/storage"
)

// Update adalah jalur paling kompleks: delta field + file baru + daftar
// target replace, semua dalam satu transaksi DB dengan kompensasi disk.
//
// Mode file:
//   - Mode 3: tanpa file baru → hanya update skalar.
//   - Mode 1: pasangan (file_ids[i], files[i]) → replace in-place.
//   - Mode 1.5: sisa file setelah replaceCount → append attachment baru.
//   - Mode 2: tanpa file_ids sama sekali → semua file baru di-append.
func (s *ArsipService) Update(id uint, req dto.UpdateArsipRequest, files []UploadedFile, userID uint, role string) (*dto.ArsipResponse, error) {
	var existing model.ArsipModel
	if err := s.DB.Preload("ArsipFiles").First(&existing, id).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Arsip")
	}

	if err := authorizeMutation(existing.CreatedByID, userID, role); err != nil {
		return nil, err
	}

	kategoriID := existing.IDKategori
	if req.IDKategori != nil {
		kategoriID = *req.IDKategori
	}
	kategori, err := s.Registry.FindByID(kategoriID)
	if err != nil {
		return nil, err
	}

	tanggal, err := dto.ParseTanggal(req.Tanggal)
	if err != nil {
		return nil, err
	}

	// Merge existing ∪ delta untuk field wajib; aturan penomoran hanya
	// jalan kalau no memang ikut diubah.
	mergedNama := existing.Nama
	if req.Nama != nil {
		mergedNama = req.Nama
	}
	mergedTanggal := existing.Tanggal
	if tanggal != nil {
		mergedTanggal = tanggal
	}

	input := rules.Input{Nama: mergedNama, Tanggal: mergedTanggal}
	if req.No != nil {
		input.No = *req.No
	}
	if req.NoFisik != nil {
		input.NoFisik = *req.NoFisik
	}

	if err := rules.Validate(kategori, input, len(existing.ArsipFiles), len(files), id, s.dupChecker(s.DB)); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"created_by_id": userID}
	if req.IDKategori != nil {
		updates["id_kategori"] = *req.IDKategori
	}
	if req.Nama != nil {
		updates["nama"] = *req.Nama
	}
	if tanggal != nil {
		updates["tanggal"] = *tanggal
	}
	if req.NoFisik != nil {
		updates["no_fisik"] = *req.NoFisik
	}
	if req.No != nil {
		// no berubah → envelope + hash wajib di-regenerate, tidak pernah
		// mewarisi pasangan lama.
		noEnc, noHash, err := s.sealNo(*req.No)
		if err != nil {
			return nil, err
		}
		updates["no"] = *req.No
		updates["no_enc"] = noEnc
		updates["no_hash"] = noHash
	}

	mergedNoFisik := existing.NoFisik
	if req.NoFisik != nil {
		mergedNoFisik = *req.NoFisik
	}
	subfolder := storage.ArsipSubfolder(kategoriID, mergedTanggal, mergedNoFisik)

	var written []string
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Update skalar duluan.
		if err := tx.Model(&model.ArsipModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		// Mode 3: tidak ada file baru.
		if len(files) == 0 {
			return nil
		}

		replacements, appends := splitFileModes(req.FileIDs, files)

		// Mode 1: replace berpasangan.
		for _, rep := range replacements {
			var oldFile model.ArsipFileModel
			if err := tx.First(&oldFile, rep.FileID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound,
					fmt.Sprintf("File dengan ID %d tidak ditemukan", rep.FileID))
			}
			if oldFile.IDArsip != id {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("File dengan ID %d bukan milik arsip ini", rep.FileID))
			}

			preset, err := s.encryptPreset(kategori, rep.NewFile)
			if err != nil {
				return err
			}
			newPath, err := s.Vault.Replace(rep.NewFile.Data, rep.NewFile.Name, oldFile.Path, subfolder, preset)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan file")
			}
			written = append(written, newPath)

			if err := tx.Model(&oldFile).Updates(map[string]interface{}{
				"original_name": rep.NewFile.Name,
				"path":          newPath,
				"upload_by_id":  userID,
			}).Error; err != nil {
				return err
			}
		}

		// Mode 1.5 / Mode 2: sisanya append sebagai attachment baru.
		for _, newFile := range appends {
			preset, err := s.encryptPreset(kategori, newFile)
			if err != nil {
				return err
			}
			relPath, err := s.Vault.Store(newFile.Data, newFile.Name, subfolder, preset)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan file")
			}
			written = append(written, relPath)

			if err := tx.Create(&model.ArsipFileModel{
				IDArsip:      id,
				OriginalName: newFile.Name,
				Path:         relPath,
				UploadByID:   userID,
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		// Rows sudah di-rollback; file yang terlanjur tertulis dibersihkan manual.
		s.cleanupFiles(written)
		return nil, helper.TranslateDBError(txErr, "Arsip")
	}

	return s.FindOne(id)
}

// RemoveFile menghapus satu attachment. Attachment terakhir tidak boleh
// dihapus — arsip minimal punya satu file.
func (s *ArsipService) RemoveFile(fileID, userID uint, role string) error {
	var file model.ArsipFileModel
	if err := s.DB.First(&file, fileID).Error; err != nil {
		return helper.TranslateDBError(err, "File arsip")
	}

	var arsip model.ArsipModel
	if err := s.DB.First(&arsip, file.IDArsip).Error; err != nil {
		return helper.TranslateDBError(err, "Arsip")
	}

	if err := authorizeMutation(arsip.CreatedByID, userID, role); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki izin untuk menghapus file ini")
	}

	var totalFiles int64
	if err := s.DB.Model(&model.ArsipFileModel{}).Where("id_arsip = ?", file.IDArsip).Count(&totalFiles).Error; err != nil {
		return helper.TranslateDBError(err, "File arsip")
	}
	if err := ensureRemainingFile(totalFiles); err != nil {
		return err
	}

	if err := s.Vault.Delete(file.Path); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus file fisik")
	}

	if err := s.DB.Delete(&file).Error; err != nil {
		return helper.TranslateDBError(err, "File arsip")
	}
	return nil
}

// Remove menghapus arsip beserta seluruh attachment-nya:
// file fisik dibersihkan dulu, lalu rows dalam satu transaksi.
func (s *ArsipService) Remove(id, userID uint, role string) error {
	var existing model.ArsipModel
	if err := s.DB.Preload("ArsipFiles").First(&existing, id).Error; err != nil {
		return helper.TranslateDBError(err, "Arsip")
	}

	if err := authorizeMutation(existing.CreatedByID, userID, role); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "Anda hanya dapat menghapus arsip milik Anda sendiri")
	}

	for _, f := range existing.ArsipFiles {
		if err := s.Vault.Delete(f.Path); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus file fisik")
		}
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_arsip = ?", id).Delete(&model.ArsipFileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	}); err != nil {
		return helper.TranslateDBError(err, "Arsip")
	}
	return nil
}

// ServeFile mengirim isi attachment ke client. Riwayat campuran
// encrypted/plain dalam satu kategori ditoleransi — lihat serveContent.
func (s *ArsipService) ServeFile(fileID uint, c *fiber.Ctx) error {
	var file model.ArsipFileModel
	if err := s.DB.First(&file, fileID).Error; err != nil {
		return helper.TranslateDBError(err, "File arsip")
	}

	raw, found, err := s.Vault.Read(file.Path)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca file")
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "File fisik tidak ditemukan")
	}

	body, contentType := serveContent(s.Cipher, file.OriginalName, raw)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, file.OriginalName))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

// ToggleSync membalik flag sinkronisasi dan stempel waktunya.
func (s *ArsipService) ToggleSync(id uint) (*dto.ArsipResponse, error) {
	var arsip model.ArsipModel
	if err := s.DB.First(&arsip, id).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Arsip")
	}

	updates := map[string]interface{}{"is_sync": !arsip.IsSync}
	if !arsip.IsSync {
		updates["sync_at"] = time.Now()
	} else {
		updates["sync_at"] = nil
	}

	if err := s.DB.Model(&arsip).Updates(updates).Error; err != nil {
		return nil, helper.TranslateDBError(err, "Arsip")
	}

	return s.FindOne(id)
}
