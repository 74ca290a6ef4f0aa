package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// PaymentMethods is the closed set of accepted methods.
var PaymentMethods = map[string]bool{
	PaymentMethodCard: true,
	PaymentMethodCash: true,
}

// CardDetails are the raw card fields entered at the payment step. They are
// validated and then discarded; only the last four digits survive in the
// wizard session.
type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"` // MM/YY
	CVV        string `json:"cvv"`
}

// PaymentSelection is the wizard's record of the chosen method. For card
// payments the raw details are exchanged for an opaque provider token at
// selection time; only the token and the last four digits are kept.
type PaymentSelection struct {
	Method          string `json:"method"`
	CardLast4       string `json:"card_last4,omitempty"`
	PaymentMethodID string `json:"payment_method_id,omitempty"`
}

// PaymentRequest is handed to the payment processor at confirmation.
type PaymentRequest struct {
	UserID          string  `json:"user_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Method          string  `json:"method"`
	PaymentMethodID string  `json:"payment_method_id,omitempty"`
}

// Invoice statuses.
const (
	InvoiceStatusPaid         = "paid"
	InvoiceStatusDueOnArrival = "due_on_arrival"
	InvoiceStatusFailed       = "failed"
)

// Invoice records the outcome of a payment attempt.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoice_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"`
	PaymentID string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
