package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	ucAvailability "github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
)

type AvailabilityHandler struct {
	create     *ucAvailability.Create
	update     *ucAvailability.Update
	remove     *ucAvailability.Delete
	listAdmin  *ucAvailability.ListForAdmin
	listPublic *ucAvailability.ListPublic
	log        *zerolog.Logger
}

func NewAvailabilityHandler(
	create *ucAvailability.Create,
	update *ucAvailability.Update,
	remove *ucAvailability.Delete,
	listAdmin *ucAvailability.ListForAdmin,
	listPublic *ucAvailability.ListPublic,
	log *zerolog.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create:     create,
		update:     update,
		remove:     remove,
		listAdmin:  listAdmin,
		listPublic: listPublic,
		log:        log,
	}
}

type CreateAvailabilityRequest struct {
	Date  string   `json:"date" binding:"required"`
	Slots []string `json:"slots" binding:"required"`
}

// UpdateAvailabilityRequest keeps slots raw so an explicit empty list can be
// told apart from an absent one.
type UpdateAvailabilityRequest struct {
	Date  *string         `json:"date"`
	Slots json.RawMessage `json:"slots"`
}

// POST admin/barbers/:id/availability
func (h *AvailabilityHandler) Create(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	av, err := h.create.Execute(c.Request.Context(), ucAvailability.CreateInput{
		BarberID: barberID,
		Date:     req.Date,
		Slots:    req.Slots,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "create_availability_failed")
		return
	}

	c.JSON(http.StatusCreated, dto.AvailabilityDTO{
		ID: av.ID, BarberID: av.BarberID, Date: av.Date, Slots: av.Slots,
	})
}

// PATCH admin/barbers/:id/availability/:availability_id
func (h *AvailabilityHandler) Update(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	availabilityID, ok := uintParam(c, "availability_id")
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucAvailability.UpdateInput{
		BarberID:       barberID,
		AvailabilityID: availabilityID,
		Date:           req.Date,
	}
	if len(req.Slots) > 0 && string(req.Slots) != "null" {
		if err := json.Unmarshal(req.Slots, &in.Slots); err != nil {
			httperr.BadRequest(c, "invalid_request", "slots must be a list of HH:MM strings.")
			return
		}
		in.SlotsSet = true
	}

	av, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err, "update_availability_failed")
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityDTO{
		ID: av.ID, BarberID: av.BarberID, Date: av.Date, Slots: av.Slots,
	})
}

// DELETE admin/barbers/:id/availability/:availability_id
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	availabilityID, ok := uintParam(c, "availability_id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), barberID, availabilityID); err != nil {
		httperr.Respond(c, h.log, err, "delete_availability_failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// GET admin/barbers/:id/availability?date=
func (h *AvailabilityHandler) ListForAdmin(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	out, err := h.listAdmin.Execute(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err, "list_availability_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": out})
}

// GET public/barbers/:id/availability?date=
func (h *AvailabilityHandler) ListPublic(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	out, err := h.listPublic.Execute(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err, "list_availability_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": out})
}
