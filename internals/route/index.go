package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	arsipService "arsipku_backend/internals/features/archive/arsip/service"
	userModel "arsipku_backend/internals/features/users/model"
	"arsipku_backend/internals/helpers/cipher"
	"arsipku_backend/internals/helpers/storage"
	authMiddleware "arsipku_backend/internals/middlewares/auth"
	routeDetails "arsipku_backend/internals/route/details"

	kategoriService "arsipku_backend/internals/features/archive/kategori/service"
)

// SetupRoutes merakit dependency graph lalu memasang seluruh route:
// cipher + vault → registry kategori → service arsip → controllers.
// Kunci enkripsi/hash diterima sebagai parameter, bukan diambil dari global.
func SetupRoutes(app *fiber.App, db *gorm.DB, aesKey, hmacKey []byte) {
	ciph, err := cipher.NewService(aesKey, hmacKey)
	if err != nil {
		log.Fatalf("❌ Gagal inisialisasi cipher: %v", err)
	}
	vault := storage.NewVaultFromEnv()
	registry := kategoriService.NewKategoriRegistry(db, vault)
	arsipSvc := arsipService.NewArsipService(db, registry, ciph, vault)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (/api/a)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Hanya admin yang boleh mengakses fitur ini", userModel.RoleAdmin),
	)
	routeDetails.KategoriRoutes(admin, registry)

	// ===================== USER (ADMIN + OPERATOR) =====================
	log.Println("[INFO] Setting up USER group (/api/u)...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Hanya admin dan operator yang boleh mengakses fitur ini",
			userModel.RoleAdmin, userModel.RoleOperator),
	)
	routeDetails.ArsipRoutes(user, arsipSvc)
}
