package dto

type AvailabilityDTO struct {
	ID       uint     `json:"id"`
	BarberID uint     `json:"barber_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

type ReviewDTO struct {
	ID         uint    `json:"id"`
	ClientName string  `json:"client_name"`
	Rating     int     `json:"rating"`
	Comment    string  `json:"comment"`
	CreatedAt  string  `json:"created_at"`
	EditedAt   *string `json:"edited_at"`
}

type BarberReviewsDTO struct {
	BarberID uint        `json:"barber_id"`
	Average  float64     `json:"average"`
	Count    int64       `json:"count"`
	Reviews  []ReviewDTO `json:"reviews"`
}
