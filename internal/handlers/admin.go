package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/config"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/middleware"
	"github.com/example/scentquiz/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	cfg     *config.Config
	catalog *catalog.Catalog
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(cfg *config.Config, c *catalog.Catalog) *AdminHandler {
	return &AdminHandler{cfg: cfg, catalog: c}
}

type loginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// Login exchanges admin credentials for a JWT.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if !utils.IsPasswordHash(h.cfg.AdminPasswordHash) || h.cfg.JWTSecret == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "admin login is not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := utils.CheckPassword(h.cfg.AdminPasswordHash, req.Password)
	if !userOK || !passOK {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, req.Username, middleware.RoleAdmin, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// ReloadCatalog re-reads the catalog feed. A failed reload keeps serving
// the previous snapshot.
func (h *AdminHandler) ReloadCatalog(c *fiber.Ctx) error {
	admin, _ := middleware.CurrentAdmin(c)
	if err := h.catalog.Reload(c.UserContext()); err != nil {
		logging.Warn().Err(err).Str("admin", admin).Msg("catalog reload requested but failed")
		return fiber.NewError(fiber.StatusBadGateway, "catalog reload failed: "+err.Error())
	}

	logging.Info().Str("admin", admin).Int("products", h.catalog.Len()).Msg("catalog reloaded")
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.catalog.Stats(),
	})
}

// CatalogStats summarizes the loaded catalog.
func (h *AdminHandler) CatalogStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.catalog.Stats(),
	})
}
