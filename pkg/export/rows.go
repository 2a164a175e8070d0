package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/everhype/monthclose/pkg/domain"
	"github.com/everhype/monthclose/pkg/enrich"
)

const dateFormat = "02.01.2006 15:04:05"

// ToMoney renders integer minor units the way the accounting import expects:
// comma as decimal separator, no thousands grouping, no currency symbol,
// shortest form but never without a fractional digit (0 -> "0,0").
func ToMoney(minor int64) string {
	s := strconv.FormatFloat(float64(minor)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.Replace(s, ".", ",", 1)
}

// BuildRows turns one settled transaction into its export rows. A non-zero
// fee yields a second row booking the fee back out to the provider under the
// business name. Dates are wall clock in the display timezone.
func BuildRows(tx *domain.Transaction, customer, description string, display *time.Location) []*domain.LedgerRow {
	amount := tx.Amount
	if amount == 0 {
		// pure fee entries carry no amount of their own
		amount = tx.Fee
	}

	created := time.Unix(tx.Created, 0).In(display).Format(dateFormat)
	available := time.Unix(tx.AvailableOn, 0).In(display).Format(dateFormat)

	rows := []*domain.LedgerRow{{
		Amount:       ToMoney(amount),
		Counterparty: customer,
		BookingDate:  created,
		ValueDate:    available,
		Purpose:      description,
	}}

	if tx.Fee != 0 {
		rows = append(rows, &domain.LedgerRow{
			Amount:       ToMoney(-tx.Fee),
			Counterparty: enrich.BusinessName,
			BookingDate:  created,
			ValueDate:    available,
			Purpose:      fmt.Sprintf("Fees for payment %s -- %s", tx.ID, description),
		})
	}

	return rows
}
