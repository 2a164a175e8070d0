package domain

// LedgerRow is one line of the accounting export. All fields are already
// formatted for the target tool's import format.
type LedgerRow struct {
	Amount       string
	Counterparty string
	BookingDate  string
	ValueDate    string
	Purpose      string
}

// Record returns the row's fields in export column order.
func (r *LedgerRow) Record() []string {
	return []string{r.Amount, r.Counterparty, r.BookingDate, r.ValueDate, r.Purpose}
}
