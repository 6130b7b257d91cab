package validators

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
)

var registerOnce sync.Once

// Register adds the `slot` (HH:MM) and `isodate` (YYYY-MM-DD) tags to gin's
// binding validator.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err = v.RegisterValidation("slot", slotTag); err != nil {
			return
		}
		err = v.RegisterValidation("isodate", isoDateTag)
	})
	return err
}

func slotTag(fl validator.FieldLevel) bool {
	return availability.ValidSlot(fl.Field().String())
}

func isoDateTag(fl validator.FieldLevel) bool {
	return availability.ValidDate(fl.Field().String())
}
