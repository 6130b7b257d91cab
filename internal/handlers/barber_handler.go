package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAccount "github.com/BruksfildServices01/barbershop-booking/internal/usecase/account"
)

type BarberHandler struct {
	barbers *ucAccount.Barbers
	log     *zerolog.Logger
}

func NewBarberHandler(barbers *ucAccount.Barbers, log *zerolog.Logger) *BarberHandler {
	return &BarberHandler{barbers: barbers, log: log}
}

// PUT barber/me/image (multipart field "image")
func (h *BarberHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageBytes+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Multipart field 'image' is required.")
		return
	}
	if fh.Size > storage.MaxImageBytes {
		httperr.BadRequest(c, ucAccount.ErrInvalidImage.Code, ucAccount.ErrInvalidImage.Message)
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, h.log, err, "image_open_failed")
		return
	}
	defer f.Close()

	url, err := h.barbers.UploadImage(c.Request.Context(), middleware.UserID(c), f)
	if err != nil {
		httperr.Respond(c, h.log, err, "image_upload_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// GET public/barbers
func (h *BarberHandler) ListPublic(c *gin.Context) {
	out, err := h.barbers.ListPublic(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err, "list_barbers_failed")
		return
	}
	c.JSON(http.StatusOK, out)
}
