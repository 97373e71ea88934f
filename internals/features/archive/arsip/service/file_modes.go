package service

import (
	"github.com/gofiber/fiber/v2"

	"arsipku_backend/internals/helpers/cipher"
	"arsipku_backend/internals/helpers/storage"
)

// fileReplacement memasangkan id attachment lama dengan file upload baru
// berdasarkan posisi (file_ids[i] ↔ files[i]).
type fileReplacement struct {
	FileID  uint
	NewFile UploadedFile
}

// splitFileModes membagi file upload sesuai mode update:
// pasangan replace sebanyak min(len(fileIDs), len(files)), sisa file jadi
// append. Tanpa fileIDs semua file append; tanpa files dua-duanya kosong.
func splitFileModes(fileIDs []uint, files []UploadedFile) ([]fileReplacement, []UploadedFile) {
	n := len(fileIDs)
	if len(files) < n {
		n = len(files)
	}

	replacements := make([]fileReplacement, 0, n)
	for i := 0; i < n; i++ {
		replacements = append(replacements, fileReplacement{FileID: fileIDs[i], NewFile: files[i]})
	}
	return replacements, files[n:]
}

// ensureRemainingFile menolak penghapusan kalau attachment yang tersisa
// tinggal satu — arsip minimal punya satu file.
func ensureRemainingFile(totalFiles int64) error {
	if totalFiles <= 1 {
		return fiber.NewError(fiber.StatusBadRequest,
			"Tidak dapat menghapus semua file, setidaknya harus ada 1 file tersisa.")
	}
	return nil
}

// serveContent menentukan bytes + content type yang dikirim ke client.
// File JPEG dicoba didekripsi dulu; auth tag gagal berarti bytes memang
// tidak pernah dienkripsi (upload era sebelum enkripsi aktif, atau policy
// kategori off) → serve raw apa adanya. Non-JPEG selalu raw.
func serveContent(ciph *cipher.Service, originalName string, raw []byte) (body []byte, contentType string) {
	if storage.IsJPEGName(originalName) {
		if decrypted, err := ciph.DecryptBuffer(raw); err == nil {
			return decrypted, "image/jpeg"
		}
	}
	return raw, storage.DetectContentType(raw)
}
