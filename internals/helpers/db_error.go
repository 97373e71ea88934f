package helper

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TranslateDBError menerjemahkan error dari layer GORM/Postgres menjadi
// *fiber.Error dengan pesan yang aman untuk caller. Bentuk error driver
// (pgconn.PgError dsb.) tidak boleh bocor keluar service.
//
// entity dipakai untuk menyusun pesan, contoh: "Kategori", "Arsip".
func TranslateDBError(err error, entity string) error {
	if err == nil {
		return nil
	}

	// Sudah *fiber.Error dari service → teruskan apa adanya.
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s tidak ditemukan", entity))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s dengan data tersebut sudah ada", entity))
		case "23503": // foreign_key_violation
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Relasi %s tidak valid", entity))
		}
	}

	log.Printf("[ERROR] DB error (%s): %v", entity, err)
	return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Terjadi kesalahan pada %s", entity))
}
