package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucReview "github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
)

type ReviewHandler struct {
	reviews *ucReview.Reviews
	log     *zerolog.Logger
}

func NewReviewHandler(reviews *ucReview.Reviews, log *zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// POST client/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.reviews.Create(c.Request.Context(), ucReview.CreateInput{
		ClientID:      middleware.UserID(c),
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "create_review_failed")
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// PATCH client/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "review_id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.reviews.Update(c.Request.Context(), middleware.UserID(c), id, ucReview.UpdateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "update_review_failed")
		return
	}
	c.JSON(http.StatusOK, rv)
}

// DELETE client/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, h.log, err, "delete_review_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET public/barbers/:id/reviews
func (h *ReviewHandler) ListForBarber(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	out, err := h.reviews.ListForBarber(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, h.log, err, "list_reviews_failed")
		return
	}
	c.JSON(http.StatusOK, out)
}
