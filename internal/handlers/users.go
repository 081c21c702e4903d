package handlers

import (
	"strings"

	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UsersHandler exposes the admin-only user listing.
type UsersHandler struct {
	DB *gorm.DB
}

func NewUsersHandler(db *gorm.DB) *UsersHandler {
	return &UsersHandler{DB: db}
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	query := h.DB.Model(&models.User{})
	if search != "" {
		searchValue := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", searchValue, searchValue)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting users")
	}

	var users []models.User
	if err := utils.ApplyPagination(query.Order("created_at DESC"), p).Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing users")
	}

	return utils.Paginated(c, users, p.Page, p.Limit, total)
}
