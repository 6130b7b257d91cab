package models

import "time"

type AppointmentStatus string

const (
	StatusOngoing   AppointmentStatus = "ONGOING"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is the aggregate root for its service snapshots.
// Date is "YYYY-MM-DD" and Slot is "HH:MM" in the configured timezone, so
// lexical comparison matches chronological order.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID uint `gorm:"not null;index" json:"barber_id"`
	Barber   User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date   string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Slot   string            `gorm:"type:varchar(5);not null" json:"slot"`
	Status AppointmentStatus `gorm:"size:20;not null;default:'ONGOING';index" json:"status"`

	Services []AppointmentService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	ReminderEmailSent bool `gorm:"not null;default:false" json:"reminder_email_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AppointmentService snapshots a booked service so later catalog edits do
// not change historical pricing.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"not null;index" json:"appointment_id"`

	ServiceID *uint    `gorm:"index" json:"service_id"`
	Service   *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Price    float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Position int     `gorm:"not null;default:0" json:"-"`
}
