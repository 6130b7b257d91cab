package availability

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

var (
	ErrDuplicateAvailability = httperr.NewBusiness(
		"duplicate_availability",
		"Availability for this date already exists.",
	)
	ErrNotFound = httperr.NewBusiness(
		"availability_not_found",
		"Availability does not exist.",
	)
	ErrNoFields = httperr.NewBusiness(
		"no_fields",
		"No fields provided for update.",
	)
	ErrInvalidSlot = httperr.NewBusiness(
		"invalid_slot",
		"Slots must use the HH:MM format.",
	)
	ErrEmptySlots = httperr.NewBusiness(
		"empty_slots",
		"At least one slot is required.",
	)
	ErrInvalidDate = httperr.NewBusiness(
		"invalid_date",
		"Date must use the YYYY-MM-DD format.",
	)
	ErrPastDate = httperr.NewBusiness(
		"past_date",
		"Date cannot be in the past.",
	)
)
