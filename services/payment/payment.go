package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/paymentmethod"
	"go.uber.org/zap"

	"voyago/models"
	"voyago/utils"
)

// Processor settles the amount due at booking confirmation. Card details
// are exchanged for an opaque token up front; the raw fields never reach
// the confirmation path.
type Processor interface {
	Tokenize(ctx context.Context, card models.CardDetails) (string, error)
	Process(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// StripeProcessor charges cards through Stripe and records cash bookings
// as due on arrival. stripe.Key must be set before use; main does that at
// startup.
type StripeProcessor struct {
	Logger *zap.Logger
}

func NewStripeProcessor(logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{Logger: logger}
}

// Tokenize creates a Stripe payment method from the validated card fields
// and returns its ID.
func (p *StripeProcessor) Tokenize(ctx context.Context, card models.CardDetails) (string, error) {
	expMonth, expYear, err := splitExpiry(card.Expiry)
	if err != nil {
		return "", err
	}
	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(strings.Join(strings.Fields(card.Number), "")),
			ExpMonth: stripe.Int64(expMonth),
			ExpYear:  stripe.Int64(expYear),
			CVC:      stripe.String(card.CVV),
		},
	}
	params.Context = ctx
	pm, err := paymentmethod.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to tokenize card: %w", err)
	}
	return pm.ID, nil
}

func (p *StripeProcessor) Process(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, utils.NewValidationError(map[string]string{"amount": "payment amount must be positive"})
	}

	now := time.Now()
	invoice := &models.Invoice{
		InvoiceID: uuid.New().String(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch req.Method {
	case models.PaymentMethodCash:
		invoice.Status = models.InvoiceStatusDueOnArrival
		return invoice, nil
	case models.PaymentMethodCard:
		pi, err := p.confirmIntent(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("card payment failed: %w", err)
		}
		invoice.Status = models.InvoiceStatusPaid
		invoice.PaymentID = pi.ID
		p.Logger.Info("card payment captured",
			zap.String("paymentIntent", pi.ID),
			zap.Float64("amount", req.Amount))
		return invoice, nil
	default:
		return nil, utils.NewValidationError(map[string]string{"method": "unknown payment method"})
	}
}

// confirmIntent creates and confirms a Stripe PaymentIntent against the
// tokenized card. Amounts go to Stripe in the currency's minor unit.
func (p *StripeProcessor) confirmIntent(ctx context.Context, req models.PaymentRequest) (*stripe.PaymentIntent, error) {
	if req.PaymentMethodID == "" {
		return nil, utils.NewValidationError(map[string]string{"payment": "card has not been tokenized"})
	}
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(req.Amount * 100)),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID)
	return paymentintent.New(params)
}

func splitExpiry(expiry string) (month, year int64, err error) {
	parts := strings.SplitN(expiry, "/", 2)
	if len(parts) != 2 {
		return 0, 0, utils.NewValidationError(map[string]string{"expiry": "expiry must be MM/YY"})
	}
	m, merr := strconv.ParseInt(parts[0], 10, 64)
	y, yerr := strconv.ParseInt(parts[1], 10, 64)
	if merr != nil || yerr != nil || m < 1 || m > 12 {
		return 0, 0, utils.NewValidationError(map[string]string{"expiry": "expiry must be MM/YY"})
	}
	return m, 2000 + y, nil
}
