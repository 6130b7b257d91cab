package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SlotList is an ordered set of "HH:MM" labels stored as a JSON array.
type SlotList []string

func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SlotList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = SlotList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("slot list: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("slot list: %w", err)
	}
	*s = out
	return nil
}

func (s SlotList) Contains(slot string) bool {
	for _, v := range s {
		if v == slot {
			return true
		}
	}
	return false
}

type Availability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;uniqueIndex:ux_availability_barber_date" json:"barber_id"`
	Barber   User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date  string   `gorm:"type:varchar(10);not null;uniqueIndex:ux_availability_barber_date" json:"date"`
	Slots SlotList `gorm:"type:text;not null" json:"slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
