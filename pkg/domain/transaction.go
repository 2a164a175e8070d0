package domain

import (
	"encoding/json"
)

// Transaction is one settled balance transaction as reported by the payment
// provider. Amount and Fee are integer minor units (cents).
type Transaction struct {
	ID     string `json:"id"`
	Source string `json:"source"`

	Amount int64 `json:"amount"`
	Fee    int64 `json:"fee"`

	Description string `json:"description"`

	Created     int64 `json:"created"`
	AvailableOn int64 `json:"available_on"`
}

func (t *Transaction) JSON() ([]byte, error) {
	return json.Marshal(t)
}
