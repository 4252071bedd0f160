package server

import (
	"errors"

	"likeme/internal/database"
	"likeme/internal/middleware"
	"likeme/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MsgInvalidID is returned when a path id is not a positive integer.
const MsgInvalidID = "ID inválido"

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 400 response and reports false; the caller has nothing left to send.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(MsgInvalidID))
		return 0, false
	}
	return uint(id), true
}

// respondError writes err as a structured response. Causes behind 5xx
// responses are logged here and never reach the client.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		attrs := append(database.ErrorAttrs(err),
			"method", c.Method(),
			"path", c.Path(),
		)
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", attrs...)
	}
	return models.RespondWithError(c, status, err)
}

// errorHandler turns errors escaping handlers, recovered panics and routing
// errors into the standard error body.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return models.RespondWithError(c, fiberErr.Code, routingError(fiberErr))
	}
	return s.respondError(c, err)
}

// routingError maps Fiber's client errors onto the API's error codes.
func routingError(fiberErr *fiber.Error) *models.AppError {
	switch fiberErr.Code {
	case fiber.StatusNotFound:
		return &models.AppError{Code: models.CodeNotFound, Message: models.MsgRouteNotFound, Err: fiberErr}
	case fiber.StatusMethodNotAllowed:
		return &models.AppError{Code: models.CodeMethodNotAllowed, Message: models.MsgMethodNotAllowed, Err: fiberErr}
	default:
		return &models.AppError{Code: models.CodeBadRequest, Message: fiberErr.Message, Err: fiberErr}
	}
}
