package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/logger"
	"salongate/pkg/model"
)

type CatalogValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCatalogValidator(log *logger.Logger) *CatalogValidator {
	return &CatalogValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateService checks a service payload before any network call. Duration
// gets its own message because the admin form submits it as free text.
func (cv *CatalogValidator) ValidateService(req *model.ServiceRequest) error {
	if req.DurationMinutes <= 0 {
		return apperrors.Validation("durationMinutes must be a positive number of minutes")
	}

	if err := cv.validate.Struct(req); err != nil {
		return apperrors.Validation("invalid service: " + err.Error())
	}
	return nil
}

func (cv *CatalogValidator) ValidateStaff(req *model.StaffRequest) error {
	if req.Name == "" {
		return apperrors.Validation("name cannot be empty")
	}

	if err := cv.validate.Struct(req); err != nil {
		return apperrors.Validation("invalid staff member: " + err.Error())
	}
	return nil
}
