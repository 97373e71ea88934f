package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"arsipku_backend/internals/features/archive/kategori/dto"
	"arsipku_backend/internals/features/archive/kategori/service"
	helper "arsipku_backend/internals/helpers"
)

type KategoriController struct {
	Registry *service.KategoriRegistry
	Validate *validator.Validate
}

func NewKategoriController(registry *service.KategoriRegistry) *KategoriController {
	return &KategoriController{
		Registry: registry,
		Validate: validator.New(),
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}

// POST /api/a/kategori
func (ctrl *KategoriController) Create(c *fiber.Ctx) error {
	var req dto.CreateKategoriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	kategori, err := ctrl.Registry.Create(req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kategori berhasil dibuat", kategori)
}

// GET /api/a/kategori
func (ctrl *KategoriController) FindAll(c *fiber.Ctx) error {
	var req dto.FindAllKategoriRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	p := helper.ParseFiber(c, "id", "desc", helper.DefaultOpts)
	result, err := ctrl.Registry.FindAll(req, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithMeta(c, "Daftar kategori berhasil diambil", result.Items, result.Meta)
}

// GET /api/a/kategori/:id
func (ctrl *KategoriController) FindByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	kategori, err := ctrl.Registry.FindByID(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Kategori berhasil diambil", kategori)
}

// GET /api/a/kategori/slug/:slug
func (ctrl *KategoriController) FindBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Slug tidak valid")
	}

	kategori, err := ctrl.Registry.FindBySlug(slug)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Kategori berhasil diambil", kategori)
}

// PUT /api/a/kategori/:id
func (ctrl *KategoriController) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateKategoriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	kategori, err := ctrl.Registry.Update(id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Kategori berhasil diperbarui", kategori)
}

// DELETE /api/a/kategori/:id — destruktif (ikut menghapus seluruh arsip),
// jadi wajib konfirmasi password admin di body.
func (ctrl *KategoriController) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.DeleteKategoriRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.Registry.Delete(id, req.Password, userID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Kategori beserta seluruh arsipnya berhasil dihapus", nil)
}
