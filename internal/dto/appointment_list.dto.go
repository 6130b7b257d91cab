package dto

import "time"

type AppointmentServiceDTO struct {
	ServiceID *uint   `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type ClientAppointmentDTO struct {
	ID         uint                    `json:"id"`
	BarberID   uint                    `json:"barber_id"`
	BarberName string                  `json:"barber_name"`
	Date       string                  `json:"date"`
	Slot       string                  `json:"slot"`
	Status     string                  `json:"status"`
	Services   []AppointmentServiceDTO `json:"services"`
	TotalPrice float64                 `json:"total_price"`
	CreatedAt  time.Time               `json:"created_at"`
	Reviewable bool                    `json:"reviewable"`
}

type BarberAppointmentDTO struct {
	ID          uint                    `json:"id"`
	ClientID    uint                    `json:"client_id"`
	ClientName  string                  `json:"client_name"`
	ClientEmail string                  `json:"client_email"`
	Date        string                  `json:"date"`
	Slot        string                  `json:"slot"`
	Status      string                  `json:"status"`
	Services    []AppointmentServiceDTO `json:"services"`
	TotalPrice  float64                 `json:"total_price"`
}
