package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/logger"
	"salongate/pkg/model"
)

type ReviewValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	return &ReviewValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateSubmission checks a review before any network call. The rating
// bound gets its own message because it is the one users actually hit.
func (rv *ReviewValidator) ValidateSubmission(req *model.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return apperrors.Validation("rating must be between 1 and 5")
	}

	if err := rv.validate.Struct(req); err != nil {
		return apperrors.Validation("invalid review: " + err.Error())
	}
	return nil
}

func (rv *ReviewValidator) ValidateResponse(req *model.ReviewResponseRequest) error {
	if req.StaffResponse == "" {
		return apperrors.Validation("response cannot be empty")
	}

	if err := rv.validate.Struct(req); err != nil {
		return apperrors.Validation("invalid response: " + err.Error())
	}
	return nil
}
