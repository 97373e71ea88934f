package storage

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var reJPEGName = regexp.MustCompile(`(?i)\.(jpg|jpeg)$`)

// Vault adalah penyimpanan attachment di disk lokal di bawah satu upload root.
// Semua path yang keluar-masuk adalah path relatif terhadap Root (forward slash),
// itulah yang disimpan di kolom path arsip_files.
type Vault struct {
	Root string
}

func NewVault(root string) *Vault {
	if root == "" {
		root = "./uploads"
	}
	return &Vault{Root: root}
}

func NewVaultFromEnv() *Vault {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "./uploads"
	}
	return NewVault(root)
}

// GenerateFileName membuat nama file unik (uuid) dengan extension asli dipertahankan.
func GenerateFileName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// ArsipSubfolder menyusun konvensi path arsip: arsip/{kategoriID}/{tahun}/{noFisik}.
// Tahun diambil dari tanggal arsip; kalau tanggal kosong pakai tahun berjalan.
func ArsipSubfolder(kategoriID uint, tanggal *time.Time, noFisik string) string {
	year := time.Now().Year()
	if tanggal != nil {
		year = tanggal.Year()
	}
	return path.Join("arsip", fmt.Sprintf("%d", kategoriID), fmt.Sprintf("%d", year), noFisik)
}

// Store menulis file baru: raw bytes upload, atau preset (mis. hasil enkripsi)
// kalau diberikan. Folder dibuat on demand. Return path relatif untuk disimpan di DB.
func (v *Vault) Store(raw []byte, originalName, subfolder string, preset []byte) (string, error) {
	if originalName == "" {
		return "", fmt.Errorf("file tidak valid atau tidak ditemukan")
	}

	dir := filepath.Join(v.Root, filepath.FromSlash(subfolder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("gagal menyiapkan folder upload: %w", err)
	}

	name := GenerateFileName(originalName)
	content := raw
	if preset != nil {
		content = preset
	}

	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}
	return path.Join(subfolder, name), nil
}

// Replace menyimpan file baru lalu menghapus file lama. Gagal hapus file lama
// (mis. sudah tidak ada) ditelan, tidak menggagalkan operasi.
func (v *Vault) Replace(raw []byte, originalName, oldRelPath, subfolder string, preset []byte) (string, error) {
	newPath, err := v.Store(raw, originalName, subfolder, preset)
	if err != nil {
		return "", err
	}

	if oldRelPath != "" && !strings.Contains(oldRelPath, "..") {
		if err := v.Delete(oldRelPath); err != nil {
			log.Printf("[WARN] Gagal menghapus file lama %s: %v", oldRelPath, err)
		}
	}
	return newPath, nil
}

// Delete menghapus file relatif terhadap Root. File yang sudah tidak ada bukan error.
func (v *Vault) Delete(relPath string) error {
	if relPath == "" || strings.Contains(relPath, "..") {
		return nil
	}
	full := filepath.Join(v.Root, filepath.FromSlash(relPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Abs mengembalikan path absolut untuk serving.
func (v *Vault) Abs(relPath string) string {
	return filepath.Join(v.Root, filepath.FromSlash(relPath))
}

// Read membaca isi file; (nil, false) kalau file fisik tidak ada.
func (v *Vault) Read(relPath string) ([]byte, bool, error) {
	b, err := os.ReadFile(v.Abs(relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// IsJPEGName cek berdasarkan nama file asli (dipakai jalur smart decrypt saat serve).
func IsJPEGName(name string) bool {
	return reJPEGName.MatchString(name)
}

// IsJPEGBytes sniff isi file, bukan cuma header Content-Type dari client.
// Dipakai sebagai gerbang enkripsi: hanya JPEG yang dienkripsi at-rest.
func IsJPEGBytes(b []byte) bool {
	return mimetype.Detect(b).Is("image/jpeg")
}

// DetectContentType sniff MIME type dari isi file untuk header response.
func DetectContentType(b []byte) string {
	return mimetype.Detect(b).String()
}
