package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Konaisya/build-service/internal/service"
)

type Handler struct {
	houses     *service.HouseService
	apartments *service.ApartmentService
	orders     *service.OrderService
	auth       *service.AuthService
	users      *service.UserService
	log        zerolog.Logger
}

func NewHandler(
	houses *service.HouseService,
	apartments *service.ApartmentService,
	orders *service.OrderService,
	auth *service.AuthService,
	users *service.UserService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		houses:     houses,
		apartments: apartments,
		orders:     orders,
		auth:       auth,
		users:      users,
		log:        log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrOrderCreation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, errors.New("invalid date")
}

func readUpload(file *multipart.FileHeader) (service.ImageUpload, error) {
	src, err := file.Open()
	if err != nil {
		return service.ImageUpload{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return service.ImageUpload{}, err
	}
	return service.ImageUpload{Name: file.Filename, Data: data}, nil
}
