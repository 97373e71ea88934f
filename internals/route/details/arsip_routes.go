package details

import (
	"github.com/gofiber/fiber/v2"

	"arsipku_backend/internals/features/archive/arsip/controller"
	"arsipku_backend/internals/features/archive/arsip/service"
	rateLimiter "arsipku_backend/internals/middlewares"
)

// ArsipRoutes — CRUD arsip untuk user login (ADMIN + OPERATOR).
func ArsipRoutes(user fiber.Router, svc *service.ArsipService) {
	ctrl := controller.NewArsipController(svc)

	arsip := user.Group("/arsip")
	arsip.Post("/", rateLimiter.UploadRateLimiter(), ctrl.Create)
	arsip.Post("/kategori/:slug", rateLimiter.UploadRateLimiter(), ctrl.CreateBySlug)
	arsip.Get("/", ctrl.FindAll)
	arsip.Get("/file/:fileId", ctrl.ServeFile)
	arsip.Delete("/file/:fileId", ctrl.RemoveFile)
	arsip.Get("/:id", ctrl.FindOne)
	arsip.Put("/:id", rateLimiter.UploadRateLimiter(), ctrl.Update)
	arsip.Patch("/:id/sync", ctrl.ToggleSync)
	arsip.Delete("/:id", ctrl.Remove)
}
