package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"salongate/pkg/logger"
	"salongate/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AppointmentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAppointmentValidator(log *logger.Logger) *AppointmentValidator {
	v := validator.New()

	if err := v.RegisterValidation("future", validateFuture); err != nil {
		log.Fatal("Failed to register 'future' validator",
			"error", err,
		)
	}

	return &AppointmentValidator{
		validate: v,
		logger:   log,
	}
}

func validateFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(time.Now())
}

func (av *AppointmentValidator) ValidateBooking(req *model.BookingRequest) error {
	if err := av.validate.Struct(req); err != nil {
		return av.translate(err)
	}
	return nil
}

func (av *AppointmentValidator) ValidateReschedule(req *model.RescheduleRequest) error {
	if err := av.validate.Struct(req); err != nil {
		return av.translate(err)
	}
	return nil
}

func (av *AppointmentValidator) translate(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		av.logger.Error("Unexpected validation failure", "error", err)
		return ValidationErrors{{Field: "request", Message: "invalid request"}}
	}

	var errs ValidationErrors
	for _, fe := range validationErrs {
		errs = append(errs, ValidationError{
			Field:   fieldName(fe),
			Message: messageFor(fe),
		})
	}
	return errs
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "BookingRequest.ServiceID"; keep the leaf.
	parts := strings.Split(fe.StructNamespace(), ".")
	return parts[len(parts)-1]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "future":
		return "must be in the future"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
