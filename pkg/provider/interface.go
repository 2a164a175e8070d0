package provider

import (
	"github.com/everhype/monthclose/pkg/domain"
)

// Provider is the payment API this tool reconciles against.
type Provider interface {
	// Transactions lists all settled balance transactions created within
	// the period, in the provider's list order.
	Transactions(p domain.Period, pageLimit int) ([]*domain.Transaction, error)

	Charge(id string) (*domain.Charge, error)
	Customer(id string) (*domain.Customer, error)

	// SessionLineItems returns the line item descriptions of the checkout
	// session that created the given payment intent, if one exists.
	SessionLineItems(paymentIntent string) ([]string, error)

	Invoice(id string) (*domain.Invoice, error)

	// Download fetches a hosted document (invoice PDF) by its signed URL.
	Download(url string) ([]byte, error)
}
