package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	cancel     *ucAppointment.CancelAppointment
	listClient *ucAppointment.ListClientAppointments
	listBarber *ucAppointment.ListBarberSchedule
	export     *ucAppointment.ExportAppointments
	log        *zerolog.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	listClient *ucAppointment.ListClientAppointments,
	listBarber *ucAppointment.ListBarberSchedule,
	export *ucAppointment.ExportAppointments,
	log *zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		cancel:     cancel,
		listClient: listClient,
		listBarber: listBarber,
		export:     export,
		log:        log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date     string `json:"date" binding:"required,isodate"`
	Slot     string `json:"slot" binding:"required,slot"`
	Services []uint `json:"services" binding:"required,min=1"`
}

// ======================================================
// CLIENT
// ======================================================

// POST client/appointments/barbers/:barber_id
func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID, ok := uintParam(c, "barber_id")
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:   middleware.UserID(c),
		BarberID:   barberID,
		Date:       req.Date,
		Slot:       req.Slot,
		ServiceIDs: req.Services,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "create_appointment_failed")
		return
	}

	httpresp.Detail(c, http.StatusCreated, "Appointment added successfully.")
}

// DELETE client/appointments/:appointment_id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "appointment_id")
	if !ok {
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, h.log, err, "cancel_appointment_failed")
		return
	}

	httpresp.Detail(c, http.StatusOK, "Appointment cancelled successfully.")
}

// GET client/appointments
func (h *AppointmentHandler) ListForClient(c *gin.Context) {
	out, err := h.listClient.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err, "list_appointments_failed")
		return
	}
	c.JSON(http.StatusOK, out)
}

// ======================================================
// BARBER
// ======================================================

// GET barber/appointments?date=YYYY-MM-DD
func (h *AppointmentHandler) ListForBarber(c *gin.Context) {
	out, err := h.listBarber.Execute(c.Request.Context(), middleware.UserID(c), c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err, "list_schedule_failed")
		return
	}
	c.JSON(http.StatusOK, out)
}

// ======================================================
// ADMIN
// ======================================================

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET admin/appointments/export?from=&to=
func (h *AppointmentHandler) Export(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	data, err := h.export.Execute(c.Request.Context(), from, to)
	if err != nil {
		httperr.Respond(c, h.log, err, "export_failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="appointments_%s_%s.xlsx"`, from, to))
	c.Data(http.StatusOK, xlsxMime, data)
}
