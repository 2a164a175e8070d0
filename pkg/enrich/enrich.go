package enrich

import (
	"strings"

	"github.com/everhype/monthclose/pkg/domain"
	"github.com/everhype/monthclose/pkg/provider"

	"github.com/rs/zerolog"
)

const (
	// BusinessName stands in wherever the provider can no longer tell us
	// who the counterparty was, e.g. chargebacks whose charge id no longer
	// resolves. It is also the counterparty on fee rows.
	BusinessName = "Stripe Technology Europe, Limited"

	payoutMarker = "STRIPE PAYOUT"
	payoutLabel  = "Auszahlung auf Bankkonto"
)

// Resolution is the outcome of a metadata lookup: either the resolved value,
// or the documented fallback with the reason we fell back. Lookups never
// abort the run.
type Resolution struct {
	Value    string
	Fallback bool
	Reason   string
}

type Enricher struct {
	api provider.Provider
	log zerolog.Logger
}

func New(api provider.Provider, log zerolog.Logger) *Enricher {
	return &Enricher{api: api, log: log}
}

// ResolveCustomer finds a display name for the charge behind a balance
// transaction: the billing name typed at checkout if present, otherwise the
// name on the customer record, otherwise the fixed business name.
func (e *Enricher) ResolveCustomer(source string) Resolution {
	charge, err := e.api.Charge(source)
	if err != nil {
		return e.fallback(BusinessName, source, err)
	}

	if charge.BillingName != "" {
		return Resolution{Value: charge.BillingName}
	}

	customer, err := e.api.Customer(charge.Customer)
	if err != nil {
		return e.fallback(BusinessName, source, err)
	}
	return Resolution{Value: customer.Name}
}

// ResolveDescription joins the line item descriptions of the checkout
// session that created the charge. Empty when there is no session or the
// lookup fails.
func (e *Enricher) ResolveDescription(source string) Resolution {
	charge, err := e.api.Charge(source)
	if err != nil {
		return e.fallback("", source, err)
	}

	items, err := e.api.SessionLineItems(charge.PaymentIntent)
	if err != nil {
		return e.fallback("", source, err)
	}
	return Resolution{Value: strings.Join(items, " + ")}
}

// Describe produces the final export description for a transaction. The
// transaction's own text wins; only blank descriptions trigger a session
// lookup. The provider's payout marker is rewritten to the label the
// accountant expects.
func (e *Enricher) Describe(tx *domain.Transaction) string {
	description := tx.Description
	if description == "" {
		description = e.ResolveDescription(tx.Source).Value
	}

	if description == payoutMarker {
		return payoutLabel
	}
	return description
}

func (e *Enricher) fallback(value, source string, err error) Resolution {
	e.log.Warn().Err(err).Str("source", source).Msg("lookup failed, using fallback")
	return Resolution{Value: value, Fallback: true, Reason: err.Error()}
}
