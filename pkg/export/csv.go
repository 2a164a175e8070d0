package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/everhype/monthclose/pkg/domain"
)

// header matches the accounting tool's import template.
var header = []string{
	"Betrag",
	"Auftraggeber/Empfänger",
	"Buchungsdatum",
	"Wertstellungsdatum",
	"Verwendungszweck",
}

// FileName returns csvs/export-YYYY-MM.csv for the given run date. The name
// carries the run month, not the exported month: the export generated in
// February holds January's data.
func FileName(runDate time.Time) string {
	return fmt.Sprintf("csvs/export-%04d-%02d.csv", runDate.Year(), int(runDate.Month()))
}

// WriteCSV writes header plus rows, semicolon delimited, UTF-8.
func WriteCSV(rows []*domain.LedgerRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	err = w.Write(header)
	for _, r := range rows {
		if err != nil {
			break
		}
		err = w.Write(r.Record())
	}
	if err != nil {
		f.Close()
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
