package handlers

import (
	"sync"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request models:
// digits (ASCII digits only) and isodate (YYYY-MM-DD).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Error("Gin binding engine is not go-playground/validator, custom tags unavailable")
			return
		}
		if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return utils.IsDigits(fl.Field().String())
		}); err != nil {
			slog.Error("Failed to register digits validator", "error", err)
		}
		if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(utils.DateLayout, fl.Field().String())
			return err == nil
		}); err != nil {
			slog.Error("Failed to register isodate validator", "error", err)
		}
	})
}
