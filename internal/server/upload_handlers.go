package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SignUpload handles POST /api/uploads/sign. Admin only. The returned
// credential set authorizes one direct client-to-media-host upload; image
// bytes never pass through this server.
func (s *Server) SignUpload(c *fiber.Ctx) error {
	return c.JSON(s.signer.Sign(time.Now()))
}
