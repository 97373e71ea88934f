package controller

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"arsipku_backend/internals/configs"
	"arsipku_backend/internals/features/archive/arsip/dto"
	"arsipku_backend/internals/features/archive/arsip/service"
	userModel "arsipku_backend/internals/features/users/model"
	helper "arsipku_backend/internals/helpers"
	"arsipku_backend/internals/helpers/storage"
)

type ArsipController struct {
	Service  *service.ArsipService
	Validate *validator.Validate
}

func NewArsipController(svc *service.ArsipService) *ArsipController {
	return &ArsipController{
		Service:  svc,
		Validate: validator.New(),
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}

// collectFiles membaca seluruh file multipart di field `files` ke memori.
// Hanya JPEG yang diterima; ukuran dibatasi MAX_FILE_SIZE_MB per file.
func collectFiles(c *fiber.Ctx) ([]service.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, nil
	}

	maxMB, _ := strconv.Atoi(configs.GetEnv("MAX_FILE_SIZE_MB", "5"))
	if maxMB <= 0 {
		maxMB = 5
	}
	maxBytes := int64(maxMB) << 20

	files := make([]service.UploadedFile, 0, len(headers))
	for _, h := range headers {
		if !storage.IsJPEGName(h.Filename) {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("File %s bukan JPEG. Hanya file .jpg/.jpeg yang diterima", h.Filename))
		}
		if h.Size > maxBytes {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("File %s melebihi batas %d MB", h.Filename, maxMB))
		}

		data, err := readMultipartFile(h)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca file upload")
		}
		files = append(files, service.UploadedFile{Name: h.Filename, Data: data})
	}
	return files, nil
}

func readMultipartFile(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// POST /api/u/arsip
func (ctrl *ArsipController) Create(c *fiber.Ctx) error {
	var req dto.CreateArsipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	files, err := collectFiles(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctrl.Service.Create(req, files, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Arsip berhasil dibuat", resp)
}

// POST /api/u/arsip/kategori/:slug — create dengan kategori dari slug URL.
func (ctrl *ArsipController) CreateBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Slug tidak valid")
	}

	var req dto.CreateArsipBySlugRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	files, err := collectFiles(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctrl.Service.CreateBySlug(slug, req.ToCreateRequest(), files, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Arsip berhasil dibuat", resp)
}

// GET /api/u/arsip — OPERATOR hanya melihat arsipnya sendiri, ADMIN semua.
func (ctrl *ArsipController) FindAll(c *fiber.Ctx) error {
	var req dto.FindAllArsipRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var scopeToUser uint
	if helper.GetUserRole(c) != userModel.RoleAdmin {
		scopeToUser = userID
	}

	p := helper.ParseFiber(c, "id", "desc", helper.DefaultOpts)
	items, meta, err := ctrl.Service.FindAll(req, p, scopeToUser)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithMeta(c, "Daftar arsip berhasil diambil", items, meta)
}

// GET /api/u/arsip/:id
func (ctrl *ArsipController) FindOne(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctrl.Service.FindOne(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Arsip berhasil diambil", resp)
}

// PUT /api/u/arsip/:id
func (ctrl *ArsipController) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateArsipRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	fileIDs, err := dto.ParseFileIDs(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	req.FileIDs = fileIDs

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	files, err := collectFiles(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctrl.Service.Update(id, req, files, userID, helper.GetUserRole(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Arsip berhasil diperbarui", resp)
}

// DELETE /api/u/arsip/:id
func (ctrl *ArsipController) Remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.Service.Remove(id, userID, helper.GetUserRole(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Arsip berhasil dihapus", nil)
}

// DELETE /api/u/arsip/file/:fileId
func (ctrl *ArsipController) RemoveFile(c *fiber.Ctx) error {
	fileID, err := parseIDParam(c, "fileId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.Service.RemoveFile(fileID, userID, helper.GetUserRole(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "File arsip berhasil dihapus", nil)
}

// GET /api/u/arsip/file/:fileId — stream isi file (smart decrypt di service).
func (ctrl *ArsipController) ServeFile(c *fiber.Ctx) error {
	fileID, err := parseIDParam(c, "fileId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.Service.ServeFile(fileID, c); err != nil {
		return helper.FromFiberError(c, err)
	}
	return nil
}

// PATCH /api/u/arsip/:id/sync
func (ctrl *ArsipController) ToggleSync(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctrl.Service.ToggleSync(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Status sinkronisasi arsip berhasil diubah", resp)
}
