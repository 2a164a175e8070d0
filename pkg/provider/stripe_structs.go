package provider

import (
	"encoding/json"

	"github.com/everhype/monthclose/pkg/domain"
)

// we only parse the small subset of fields the export needs

type transactionList struct {
	Data    []stripeTransaction `json:"data"`
	HasMore bool                `json:"has_more"`
}

type stripeTransaction struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Amount      int64  `json:"amount"`
	Fee         int64  `json:"fee"`
	Description string `json:"description"`
	Created     int64  `json:"created"`
	AvailableOn int64  `json:"available_on"`
}

func (t *stripeTransaction) transaction() *domain.Transaction {
	return &domain.Transaction{
		ID:          t.ID,
		Source:      t.Source,
		Amount:      t.Amount,
		Fee:         t.Fee,
		Description: t.Description,
		Created:     t.Created,
		AvailableOn: t.AvailableOn,
	}
}

func parseTransactionList(data []byte) (*transactionList, error) {
	list := &transactionList{}
	err := json.Unmarshal(data, list)
	return list, err
}

type stripeCharge struct {
	ID             string `json:"id"`
	BillingDetails struct {
		Name string `json:"name"`
	} `json:"billing_details"`
	Customer      string `json:"customer"`
	PaymentIntent string `json:"payment_intent"`
	Invoice       string `json:"invoice"`
}

func parseCharge(data []byte) (*domain.Charge, error) {
	raw := &stripeCharge{}
	err := json.Unmarshal(data, raw)
	if err != nil {
		return nil, err
	}

	return &domain.Charge{
		ID:            raw.ID,
		BillingName:   raw.BillingDetails.Name,
		Customer:      raw.Customer,
		PaymentIntent: raw.PaymentIntent,
		Invoice:       raw.Invoice,
	}, nil
}

type stripeCustomer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func parseCustomer(data []byte) (*domain.Customer, error) {
	raw := &stripeCustomer{}
	err := json.Unmarshal(data, raw)
	if err != nil {
		return nil, err
	}
	return &domain.Customer{ID: raw.ID, Name: raw.Name}, nil
}

type sessionList struct {
	Data []stripeSession `json:"data"`
}

type stripeSession struct {
	ID string `json:"id"`
}

func parseSessionList(data []byte) (*sessionList, error) {
	list := &sessionList{}
	err := json.Unmarshal(data, list)
	return list, err
}

type lineItemList struct {
	Data []stripeLineItem `json:"data"`
}

type stripeLineItem struct {
	Description string `json:"description"`
}

func parseLineItems(data []byte) ([]string, error) {
	list := &lineItemList{}
	err := json.Unmarshal(data, list)
	if err != nil {
		return nil, err
	}

	descriptions := []string{}
	for _, item := range list.Data {
		descriptions = append(descriptions, item.Description)
	}
	return descriptions, nil
}

type stripeInvoice struct {
	ID         string `json:"id"`
	InvoicePDF string `json:"invoice_pdf"`
}

func parseInvoice(data []byte) (*domain.Invoice, error) {
	raw := &stripeInvoice{}
	err := json.Unmarshal(data, raw)
	if err != nil {
		return nil, err
	}
	return &domain.Invoice{ID: raw.ID, PDFURL: raw.InvoicePDF}, nil
}
