package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *ucCatalog.Services
	log      *zerolog.Logger
}

func NewServiceHandler(services *ucCatalog.Services, log *zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, log: log}
}

type CreateServiceRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// POST admin/barbers/:id/services
func (h *ServiceHandler) Create(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.services.Create(c.Request.Context(), barberID, req.Name, req.Price)
	if err != nil {
		httperr.Respond(c, h.log, err, "create_service_failed")
		return
	}
	c.JSON(http.StatusCreated, s)
}

// PATCH admin/barbers/:id/services/:service_id
func (h *ServiceHandler) Update(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintParam(c, "service_id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.services.Update(c.Request.Context(), barberID, serviceID, ucCatalog.ServiceInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "update_service_failed")
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE admin/barbers/:id/services/:service_id
func (h *ServiceHandler) Delete(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintParam(c, "service_id")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), barberID, serviceID); err != nil {
		httperr.Respond(c, h.log, err, "delete_service_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET {admin,public}/barbers/:id/services
func (h *ServiceHandler) List(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	out, err := h.services.List(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, h.log, err, "list_services_failed")
		return
	}
	c.JSON(http.StatusOK, out)
}
