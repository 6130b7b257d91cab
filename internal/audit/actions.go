package audit

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentCompleted = "appointment_completed"
	ActionReminderSent         = "appointment_reminder_sent"
	ActionReviewCreated        = "review_created"
	ActionAvailabilityChanged  = "availability_changed"
	ActionBarberInvited        = "barber_invited"
	ActionUserRegistered       = "user_registered"
)
