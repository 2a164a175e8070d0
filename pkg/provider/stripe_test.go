package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/everhype/monthclose/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod() domain.Period {
	return domain.Period{
		Start: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 7, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestTransactionsPaginates(t *testing.T) {
	calls := []string{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/balance_transactions", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "1688169600", q.Get("created[gte]"))
		assert.Equal(t, "1690847999", q.Get("created[lte]"))
		assert.Equal(t, "2", q.Get("limit"))

		calls = append(calls, q.Get("starting_after"))

		if q.Get("starting_after") == "" {
			fmt.Fprint(w, `{"data":[
				{"id":"txn_1","source":"ch_1","amount":1000,"fee":50,"description":"Sale","created":1688200000,"available_on":1688400000},
				{"id":"txn_2","source":"ch_2","amount":2000,"fee":0,"description":null,"created":1688300000,"available_on":1688500000}
			],"has_more":true}`)
			return
		}
		fmt.Fprint(w, `{"data":[
			{"id":"txn_3","source":"po_1","amount":-3000,"fee":0,"description":"STRIPE PAYOUT","created":1688600000,"available_on":1688600000}
		],"has_more":false}`)
	}))
	defer ts.Close()

	s := NewStripe("sk_test")
	s.base = ts.URL

	txns, err := s.Transactions(testPeriod(), 2)

	require.Nil(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, []string{"", "txn_2"}, calls)
	assert.Equal(t, "txn_1", txns[0].ID)
	assert.Equal(t, int64(1000), txns[0].Amount)
	assert.Equal(t, int64(50), txns[0].Fee)
	assert.Equal(t, "", txns[1].Description)
	assert.Equal(t, int64(-3000), txns[2].Amount)
}

func TestChargeAndCustomer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/charges/ch_1":
			fmt.Fprint(w, `{"id":"ch_1","billing_details":{"name":""},"customer":"cus_1","payment_intent":"pi_1","invoice":"in_1"}`)
		case "/v1/customers/cus_1":
			fmt.Fprint(w, `{"id":"cus_1","name":"Ada Lovelace"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"type":"invalid_request_error"}}`)
		}
	}))
	defer ts.Close()

	s := NewStripe("sk_test")
	s.base = ts.URL

	charge, err := s.Charge("ch_1")
	require.Nil(t, err)
	assert.Equal(t, "cus_1", charge.Customer)
	assert.Equal(t, "pi_1", charge.PaymentIntent)
	assert.Equal(t, "in_1", charge.Invoice)

	customer, err := s.Customer(charge.Customer)
	require.Nil(t, err)
	assert.Equal(t, "Ada Lovelace", customer.Name)

	_, err = s.Charge("ch_gone")
	assert.NotNil(t, err)
}

func TestSessionLineItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/checkout/sessions":
			require.Equal(t, "pi_1", r.URL.Query().Get("payment_intent"))
			fmt.Fprint(w, `{"data":[{"id":"cs_1"}]}`)
		case "/v1/checkout/sessions/cs_1/line_items":
			fmt.Fprint(w, `{"data":[{"description":"Hosting"},{"description":"Support"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	s := NewStripe("sk_test")
	s.base = ts.URL

	items, err := s.SessionLineItems("pi_1")
	require.Nil(t, err)
	assert.Equal(t, []string{"Hosting", "Support"}, items)

	// no payment intent, no lookup
	items, err = s.SessionLineItems("")
	assert.Nil(t, err)
	assert.Nil(t, items)
}

func TestLookupsRejectEmptyIDs(t *testing.T) {
	// fee-only balance transactions report a null source; the bare
	// collection endpoints answer such lookups with 200 and a list, so
	// empty ids must fail client-side
	paths := []string{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `{"object":"list","data":[],"has_more":false}`)
	}))
	defer ts.Close()

	s := NewStripe("sk_test")
	s.base = ts.URL

	_, err := s.Charge("")
	assert.NotNil(t, err)

	_, err = s.Customer("")
	assert.NotNil(t, err)

	_, err = s.Invoice("")
	assert.NotNil(t, err)

	assert.Empty(t, paths)
}

func TestDoRetriesServerErrors(t *testing.T) {
	attempts := 0

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"id":"in_1","invoice_pdf":"https://files.example.com/in_1.pdf"}`)
	}))
	defer ts.Close()

	s := NewStripe("sk_test")
	s.base = ts.URL

	inv, err := s.Invoice("in_1")

	require.Nil(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "https://files.example.com/in_1.pdf", inv.PDFURL)
}

func TestDownloadSkipsAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "", r.Header.Get("Authorization"))
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	s := NewStripe("sk_test")

	data, err := s.Download(ts.URL + "/in_1.pdf")

	require.Nil(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}
