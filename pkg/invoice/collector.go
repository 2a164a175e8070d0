package invoice

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/everhype/monthclose/pkg/provider"

	"github.com/rs/zerolog"
)

const descriptionPrefix = "Invoice"

// Wants reports whether a resolved description marks an invoice payment.
func Wants(description string) bool {
	return strings.HasPrefix(description, descriptionPrefix)
}

// Collector downloads the invoice PDFs behind invoice payments and keeps
// their local paths for the mail attachment set.
type Collector struct {
	api provider.Provider
	dir string
	log zerolog.Logger

	paths []string
}

func NewCollector(api provider.Provider, dir string, log zerolog.Logger) *Collector {
	return &Collector{api: api, dir: dir, log: log}
}

// Collect fetches the invoice PDF referenced by the charge, if any, and
// writes it to {dir}/{invoice_id}.pdf. Failures are logged and the
// attachment skipped; a lost PDF must not sink the month's export.
func (c *Collector) Collect(source string) {
	charge, err := c.api.Charge(source)
	if err != nil {
		c.log.Warn().Err(err).Str("source", source).Msg("skipping invoice, charge lookup failed")
		return
	}
	if charge.Invoice == "" {
		return
	}

	inv, err := c.api.Invoice(charge.Invoice)
	if err != nil {
		c.log.Warn().Err(err).Str("invoice", charge.Invoice).Msg("skipping invoice, lookup failed")
		return
	}

	pdf, err := c.api.Download(inv.PDFURL)
	if err != nil {
		c.log.Warn().Err(err).Str("invoice", inv.ID).Msg("skipping invoice, download failed")
		return
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		c.log.Warn().Err(err).Str("dir", c.dir).Msg("skipping invoice, cannot create directory")
		return
	}

	path := filepath.Join(c.dir, inv.ID+".pdf")
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("skipping invoice, write failed")
		return
	}

	c.paths = append(c.paths, path)
}

// Paths returns the collected attachment paths in collection order.
func (c *Collector) Paths() []string {
	return c.paths
}
