package model

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentProvider string

const (
	ProviderStripe   PaymentProvider = "stripe"
	ProviderRazorpay PaymentProvider = "razorpay"
	ProviderCashfree PaymentProvider = "cashfree"
	ProviderMock     PaymentProvider = "mock"
)

// Payment is the payment record attached to an appointment. An appointment
// without one is unpaid.
type Payment struct {
	ID       int64           `json:"id"`
	Status   PaymentStatus   `json:"status"`
	Provider PaymentProvider `json:"provider,omitempty"`
	Amount   float64         `json:"amount,omitempty"`
	Currency string          `json:"currency,omitempty"`
}

// Paid reports whether the payment has settled.
func (p *Payment) Paid() bool {
	return p != nil && p.Status == PaymentPaid
}
