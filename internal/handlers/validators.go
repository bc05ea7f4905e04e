package handlers

import (
	"sync"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the calendar tags used by the request DTOs to gin's validator:
// "yearmonth" (YYYY-MM) and "calendardate" (YYYY-MM-DD).
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseMonth(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDate(fl.Field().String())
			return err == nil
		})
	})
}
