package domain

// Charge is the payment attempt behind a balance transaction's source.
type Charge struct {
	ID string `json:"id"`

	// BillingName is the name the payer typed at checkout, if any.
	BillingName string `json:"billing_name"`

	Customer      string `json:"customer"`
	PaymentIntent string `json:"payment_intent"`
	Invoice       string `json:"invoice"`
}

// Customer is the provider's customer record, used only for its name.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Invoice points at the hosted PDF for an invoice payment.
type Invoice struct {
	ID     string `json:"id"`
	PDFURL string `json:"pdf_url"`
}
