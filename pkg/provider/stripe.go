package provider

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/everhype/monthclose/pkg/domain"

	"github.com/cenkalti/backoff/v4"
)

// https://stripe.com/docs/api

const (
	retries = 5
)

// check it meets the interface
var _ Provider = &Stripe{}

func NewStripe(apiKey string) *Stripe {
	return &Stripe{
		apiKey: apiKey,
		base:   "https://api.stripe.com",
		client: &http.Client{},
	}
}

type Stripe struct {
	apiKey string
	base   string
	client *http.Client
}

func (s *Stripe) Transactions(p domain.Period, pageLimit int) ([]*domain.Transaction, error) {
	txns := []*domain.Transaction{}
	after := ""

	for {
		params := url.Values{}
		params.Add("created[gte]", strconv.FormatInt(p.Start.Unix(), 10))
		params.Add("created[lte]", strconv.FormatInt(p.End.Unix(), 10))
		params.Add("limit", strconv.Itoa(pageLimit))
		if after != "" {
			params.Add("starting_after", after)
		}

		result, err := s.get("/v1/balance_transactions", params)
		if err != nil {
			return nil, err
		}

		page, err := parseTransactionList(result)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Data {
			txns = append(txns, raw.transaction())
		}

		if !page.HasMore || len(page.Data) == 0 {
			return txns, nil
		}
		after = page.Data[len(page.Data)-1].ID
	}
}

func (s *Stripe) Charge(id string) (*domain.Charge, error) {
	// an empty id would hit the bare collection endpoint, which answers
	// 200 with a list instead of failing the lookup
	if id == "" {
		return nil, fmt.Errorf("empty charge id")
	}

	result, err := s.get("/v1/charges/"+id, nil)
	if err != nil {
		return nil, err
	}
	return parseCharge(result)
}

func (s *Stripe) Customer(id string) (*domain.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("empty customer id")
	}

	result, err := s.get("/v1/customers/"+id, nil)
	if err != nil {
		return nil, err
	}
	return parseCustomer(result)
}

func (s *Stripe) SessionLineItems(paymentIntent string) ([]string, error) {
	if paymentIntent == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Add("payment_intent", paymentIntent)

	result, err := s.get("/v1/checkout/sessions", params)
	if err != nil {
		return nil, err
	}
	sessions, err := parseSessionList(result)
	if err != nil {
		return nil, err
	}
	if len(sessions.Data) == 0 {
		return nil, nil
	}

	result, err = s.get(fmt.Sprintf("/v1/checkout/sessions/%s/line_items", sessions.Data[0].ID), nil)
	if err != nil {
		return nil, err
	}
	return parseLineItems(result)
}

func (s *Stripe) Invoice(id string) (*domain.Invoice, error) {
	if id == "" {
		return nil, fmt.Errorf("empty invoice id")
	}

	result, err := s.get("/v1/invoices/"+id, nil)
	if err != nil {
		return nil, err
	}
	return parseInvoice(result)
}

// Download fetches a document by its signed URL. These links carry their own
// access token, so no Authorization header is sent.
func (s *Stripe) Download(uri string) ([]byte, error) {
	return s.do("GET", uri, false)
}

func (s *Stripe) get(path string, params url.Values) ([]byte, error) {
	uri := s.base + path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}
	return s.do("GET", uri, true)
}

func (s *Stripe) do(method, uri string, auth bool) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequest(method, uri, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if auth {
			req.Header.Add("Authorization", "Bearer "+s.apiKey)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			// they're having trouble, best to retry
			return fmt.Errorf("got status code: %d (%s)", resp.StatusCode, string(data))
		}
		if resp.StatusCode >= 400 {
			// probably we screwed up, retrying won't fix it
			return backoff.Permanent(fmt.Errorf("got status code: %d (%s)", resp.StatusCode, string(data)))
		}

		body = data
		return nil
	}

	err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries))
	return body, err
}
