package handlers

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/filemanager/backend/internal/middleware"
	"github.com/filemanager/backend/internal/services"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type FilesHandler struct {
	Files *services.FileService
}

func NewFilesHandler(files *services.FileService) *FilesHandler {
	return &FilesHandler{Files: files}
}

func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded file")
	}
	defer stream.Close()

	record, err := h.Files.Upload(c.Context(), currentUser, stream, fileHeader.Filename, contentType, fileHeader.Size)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, record)
}

func (h *FilesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	p := utils.ParsePagination(c)
	sortField := c.Query("sort", "createdAt")
	sortDir := c.Query("dir", "desc")

	records, total, err := h.Files.List(c.Context(), currentUser.ID, p.Page, p.Limit, sortField, sortDir)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.Paginated(c, records, p.Page, p.Limit, total)
}

func (h *FilesHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	record, err := h.Files.Get(c.Context(), fileID, currentUser.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, record)
}

func (h *FilesHandler) Download(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	record, reader, err := h.Files.Download(c.Context(), fileID, currentUser.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, record.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", record.OriginalName))
	return c.SendStream(reader, int(record.Size))
}

func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	if err := h.Files.Delete(c.Context(), fileID, currentUser.ID); err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "file deleted"})
}

func (h *FilesHandler) Stats(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	count, err := h.Files.Count(c.Context(), currentUser.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	totalSize, err := h.Files.TotalSize(c.Context(), currentUser.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"count":     count,
		"totalSize": totalSize,
	})
}
