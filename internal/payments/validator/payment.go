package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/logger"
	"salongate/pkg/model"
)

type PaymentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPaymentValidator(log *logger.Logger) *PaymentValidator {
	return &PaymentValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (pv *PaymentValidator) ValidateIntent(req *model.PaymentIntentRequest) error {
	if err := pv.validate.Struct(req); err != nil {
		return apperrors.Validation("invalid payment intent: " + err.Error())
	}
	return nil
}

func (pv *PaymentValidator) ValidateVerify(req *model.PaymentVerifyRequest) error {
	if err := pv.validate.Struct(req); err != nil {
		return apperrors.Validation("invalid payment verification: " + err.Error())
	}

	// Razorpay settles via a signed redirect; the proof fields are required
	// for that provider only.
	if req.Provider == model.ProviderRazorpay {
		if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
			return apperrors.Validation("razorpay verification requires orderId, paymentId, and signature")
		}
	}
	return nil
}
