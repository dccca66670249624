package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
)

// MsgHello - ответ проверочного маршрута.
const MsgHello = "hello exercise tracker"

// PageHandler отдает стартовую страницу и проверочный маршрут.
type PageHandler struct {
	viewsDir string
}

// NewPageHandler создает обработчик страниц из каталога viewsDir.
func NewPageHandler(viewsDir string) *PageHandler {
	return &PageHandler{viewsDir: viewsDir}
}

// Index отдает views/index.html.
func (h *PageHandler) Index(ctx fiber.Ctx) error {
	if err := ctx.SendFile(filepath.Join(h.viewsDir, "index.html")); err != nil {
		return fmt.Errorf("error sending index page: %w", err)
	}
	return nil
}

// Hello отвечает {"message": "hello exercise tracker"}.
func (h *PageHandler) Hello(ctx fiber.Ctx) error {
	return sendMessage(ctx, fiber.StatusOK, MsgHello)
}
