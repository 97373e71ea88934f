package details

import (
	"github.com/gofiber/fiber/v2"

	"arsipku_backend/internals/features/archive/kategori/controller"
	"arsipku_backend/internals/features/archive/kategori/service"
)

// KategoriRoutes — manajemen kategori hanya untuk grup admin.
func KategoriRoutes(admin fiber.Router, registry *service.KategoriRegistry) {
	ctrl := controller.NewKategoriController(registry)

	kategori := admin.Group("/kategori")
	kategori.Post("/", ctrl.Create)
	kategori.Get("/", ctrl.FindAll)
	kategori.Get("/slug/:slug", ctrl.FindBySlug)
	kategori.Get("/:id", ctrl.FindByID)
	kategori.Put("/:id", ctrl.Update)
	kategori.Delete("/:id", ctrl.Delete)
}
