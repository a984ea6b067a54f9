package server

import (
	"context"
	"time"

	"vitrin/internal/middleware"
	"vitrin/internal/models"
	"vitrin/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie issued at login.
const CookieName = "vitrin_session"

// Login handles POST /api/auth/login. Unknown username and wrong password
// produce the same response so the endpoint cannot be used to enumerate
// accounts.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		middleware.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		middleware.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	now := time.Now()
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: now.Add(session.TTL),
		CreatedAt: now,
	}
	if createErr := s.sessions.Create(c.Context(), sess); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(createErr))
	}

	s.setSessionCookie(c, sess)
	middleware.LoginAttempts.WithLabelValues("success").Inc()

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Logout handles POST /api/auth/logout. Always succeeds, with or without a
// valid session.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token, ok := session.VerifyToken(c.Cookies(CookieName), s.config.SessionSecret); ok {
		if err := s.sessions.Delete(c.Context(), token); err != nil {
			// The cookie is cleared regardless; an orphaned row expires on its own.
			middleware.Logger.WarnContext(c.UserContext(), "session delete failed", "error", err.Error())
		}
	}
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/auth/me.
func (s *Server) Me(c *fiber.Ctx) error {
	sess, err := s.currentSession(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if sess == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not authenticated"))
	}

	return c.JSON(fiber.Map{
		"id":       sess.UserID,
		"username": sess.Username,
	})
}

// AuthRequired returns the session authentication middleware. It stores the
// authenticated user's ID and username in Locals for downstream handlers.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.currentSession(c)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if sess == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		c.Locals("userID", sess.UserID)
		c.Locals("username", sess.Username)
		// Sync to the user context for logging in deeper layers.
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, sess.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// currentSession resolves the session cookie to a live store record.
// Returns (nil, nil) when the request carries no valid session.
func (s *Server) currentSession(c *fiber.Ctx) (*models.Session, error) {
	token, ok := session.VerifyToken(c.Cookies(CookieName), s.config.SessionSecret)
	if !ok {
		return nil, nil
	}
	return s.sessions.Get(c.Context(), token)
}

// setSessionCookie issues the signed session cookie. Production deployments
// run cross-origin, so the cookie must be Secure with SameSite=None there;
// Lax is enough for same-site development.
func (s *Server) setSessionCookie(c *fiber.Ctx, sess *models.Session) {
	sameSite := fiber.CookieSameSiteLaxMode
	if s.config.IsProduction() {
		sameSite = fiber.CookieSameSiteNoneMode
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    session.SignToken(sess.Token, s.config.SessionSecret),
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: sameSite,
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	sameSite := fiber.CookieSameSiteLaxMode
	if s.config.IsProduction() {
		sameSite = fiber.CookieSameSiteNoneMode
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: sameSite,
		Path:     "/",
	})
}
