package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type MeHandler struct {
	users account.UserRepository
	log   *zerolog.Logger
}

func NewMeHandler(users account.UserRepository, log *zerolog.Logger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

// GET me
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err, "user_lookup_failed")
		return
	}

	body := gin.H{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"role":       user.Role,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	}

	if user.Role == models.RoleBarber {
		profile, err := h.users.GetBarberProfile(ctx, user.ID)
		if err != nil {
			httperr.Respond(c, h.log, err, "profile_lookup_failed")
			return
		}
		body["profile"] = gin.H{
			"bio":       profile.Bio,
			"image_url": profile.ImageURL,
		}
	}

	c.JSON(http.StatusOK, body)
}
