package server

import (
	"os"
	"path/filepath"

	"vitrin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupStatic serves the bundled frontend build with an SPA fallback to
// index.html. Only mounted when SERVE_FRONTEND is set; development runs the
// frontend on its own dev server and production can run API-only.
func (s *Server) SetupStatic(app *fiber.App) {
	dir := s.config.StaticDir
	if dir == "" {
		dir = filepath.Join("dist", "public")
	}

	if _, err := os.Stat(dir); err != nil {
		middleware.Logger.Warn("static dir missing, frontend will not be served", "dir", dir)
		return
	}

	app.Static("/", dir)

	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		if _, err := os.Stat(index); err != nil {
			return c.Status(fiber.StatusNotFound).SendString("Frontend build not found (index.html)")
		}
		return c.SendFile(index)
	})
}
