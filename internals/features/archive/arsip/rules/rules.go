package rules

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"

	kategoriModel "arsipku_backend/internals/features/archive/kategori/model"
)

// Input adalah field arsip yang divalidasi — pada update sudah hasil merge
// (existing ∪ delta) sebelum masuk ke sini.
type Input struct {
	No      string
	Nama    *string
	Tanggal *time.Time
	NoFisik string
}

// DupQuery adalah compound key pencarian duplikat sesuai unique_constraint.
type DupQuery struct {
	KategoriID uint
	No         string
	Tanggal    *time.Time // nil = tidak ikut key
	NoFisik    string     // "" = tidak ikut key
	ExcludeID  uint       // 0 = create, >0 = id arsip sendiri saat update
}

// DupChecker di-inject oleh storage layer; engine ini sendiri pure dan
// bisa dites tanpa database.
type DupChecker func(DupQuery) (bool, error)

var (
	reNumeric      = regexp.MustCompile(`^[0-9\-\./]+$`)
	reAlphanumeric = regexp.MustCompile(`^[a-zA-Z0-9\-\./]+$`)
)

// Validate mengevaluasi aturan kategori terhadap arsip yang diajukan.
// Urutan: kapasitas file → field wajib → penomoran → keunikan.
// Setiap pelanggaran langsung hard-fail, tidak ada partial apply.
func Validate(
	kategori *kategoriModel.KategoriModel,
	in Input,
	existingFileCount, newFileCount int,
	excludeID uint,
	dup DupChecker,
) error {
	if kategori == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Data kategori tidak ditemukan")
	}

	// 1. Kapasitas
	total := existingFileCount + newFileCount
	if total > kategori.MaxFile {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(
			"Maksimal file untuk kategori %s adalah %d. Saat ini: %d, Ditambah: %d",
			kategori.Name, kategori.MaxFile, existingFileCount, newFileCount,
		))
	}

	// 2. Field wajib
	if kategori.RulesFormNama && (in.Nama == nil || *in.Nama == "") {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Nama wajib diisi untuk kategori %s", kategori.Name))
	}
	if kategori.RulesFormTanggal && in.Tanggal == nil {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Tanggal wajib diisi untuk kategori %s", kategori.Name))
	}

	// 3. Penomoran dinamis — hanya kalau no diisi
	if in.No != "" {
		if err := validateNo(kategori, in.No); err != nil {
			return err
		}

		// 4. Keunikan
		if err := validateUnique(kategori, in, excludeID, dup); err != nil {
			return err
		}
	}

	return nil
}

func validateNo(kategori *kategoriModel.KategoriModel, no string) error {
	// a. Prefix
	if kategori.NoPrefix != nil && *kategori.NoPrefix != "" {
		if len(no) < len(*kategori.NoPrefix) || no[:len(*kategori.NoPrefix)] != *kategori.NoPrefix {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Nomor harus diawali dengan prefix: %s", *kategori.NoPrefix))
		}
	}

	// b. Panjang
	if kategori.NoMinLength != nil && len(no) < *kategori.NoMinLength {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Nomor minimal %d karakter", *kategori.NoMinLength))
	}
	if kategori.NoMaxLength != nil && len(no) > *kategori.NoMaxLength {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Nomor maksimal %d karakter", *kategori.NoMaxLength))
	}

	// c. Charset per tipe (CUSTOM skip)
	switch kategori.NoType {
	case kategoriModel.NoTypeNumeric:
		if !reNumeric.MatchString(no) {
			return fiber.NewError(fiber.StatusBadRequest, "Nomor harus berupa angka (dan pemisah standar)")
		}
	case kategoriModel.NoTypeAlphanumeric:
		if !reAlphanumeric.MatchString(no) {
			return fiber.NewError(fiber.StatusBadRequest, "Nomor harus berupa huruf dan angka")
		}
	}

	// d. Regex kategori. Pattern yang tidak compile dicatat lalu di-skip,
	// konfigurasi kategori tidak bikin semua create gagal.
	if kategori.NoRegex != nil && *kategori.NoRegex != "" {
		re, err := regexp.Compile(*kategori.NoRegex)
		if err != nil {
			log.Printf("[ERROR] Regex kategori %q tidak valid, check di-skip: %v", *kategori.NoRegex, err)
		} else if !re.MatchString(no) {
			msg := "Format nomor tidak sesuai."
			if kategori.NoFormat != nil && *kategori.NoFormat != "" {
				msg = fmt.Sprintf("Format nomor tidak sesuai. Contoh: %s", *kategori.NoFormat)
			}
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}
	}

	return nil
}

func validateUnique(kategori *kategoriModel.KategoriModel, in Input, excludeID uint, dup DupChecker) error {
	if kategori.UniqueConstraint == kategoriModel.UniqueNone || dup == nil {
		return nil
	}

	q := DupQuery{KategoriID: kategori.ID, No: in.No, ExcludeID: excludeID}
	msg := fmt.Sprintf("Arsip dengan Nomor %s sudah ada di kategori ini.", in.No)

	switch kategori.UniqueConstraint {
	case kategoriModel.UniqueNoTgl:
		if in.Tanggal == nil {
			return nil // compound key belum lengkap → tidak bisa dicek
		}
		q.Tanggal = in.Tanggal
		msg = fmt.Sprintf("Arsip dengan Nomor %s dan Tanggal tersebut sudah ada di kategori ini.", in.No)
	case kategoriModel.UniqueNoFisik:
		if in.NoFisik == "" {
			return nil
		}
		q.NoFisik = in.NoFisik
		msg = fmt.Sprintf("Arsip dengan Nomor %s dan No Fisik tersebut sudah ada di kategori ini.", in.No)
	}

	found, err := dup(q)
	if err != nil {
		return err
	}
	if found {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return nil
}
