package llm

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrMissingAPIKey  = errors.New("gemini api key not configured")
	ErrQuotaExceeded  = errors.New("gemini api quota exceeded")
	ErrMalformedReply = errors.New("invalid response from gemini")
)

// UpstreamError is a non-2xx answer other than 429.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini returned status %d", e.StatusCode)
}

// FiberError maps client errors onto the HTTP status handlers return.
func FiberError(err error, fallback string) *fiber.Error {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusInternalServerError, "Gemini API key not configured")
	case errors.Is(err, ErrQuotaExceeded):
		return fiber.NewError(fiber.StatusTooManyRequests,
			"Gemini API quota exceeded; check usage at https://aistudio.google.com/app/plan or try a different key")
	case errors.Is(err, ErrMalformedReply):
		return fiber.NewError(fiber.StatusBadGateway, fallback+": "+err.Error())
	case errors.As(err, &upstream):
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("%s: upstream status %d", fallback, upstream.StatusCode))
	default:
		return fiber.NewError(fiber.StatusBadGateway, fallback)
	}
}
