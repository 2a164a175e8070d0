package mail

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "export-2023-08.csv")
	require.Nil(t, os.WriteFile(csvPath, []byte("Betrag;Empf"), 0644))

	m := NewMailer("smtp.example.com", 587, "bot", "hunter2",
		"bot@example.com", []string{"books@example.com", "boss@example.com"})

	gm := m.compose(&Message{
		Subject: "Stripe export csvs/export-2023-08.csv is ready",
		Body:    "Hello,\n\nplease check attached files.",
		Files:   []string{csvPath},
	})

	buf := &bytes.Buffer{}
	_, err := gm.WriteTo(buf)
	require.Nil(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "From: bot@example.com")
	assert.Contains(t, raw, "To: books@example.com, boss@example.com")
	assert.Contains(t, raw, "Subject: Stripe export csvs/export-2023-08.csv is ready")
	assert.Contains(t, raw, "Hello,")
	assert.Contains(t, raw, `filename="export-2023-08.csv"`)
	// attachment content travels base64 encoded
	assert.Contains(t, raw, base64.StdEncoding.EncodeToString([]byte("Betrag;Empf")))
}

func TestComposeWithoutAttachments(t *testing.T) {
	m := NewMailer("smtp.example.com", 587, "bot", "hunter2",
		"bot@example.com", []string{"books@example.com"})

	gm := m.compose(&Message{Subject: "Stripe export is ready", Body: "Hello"})

	buf := &bytes.Buffer{}
	_, err := gm.WriteTo(buf)
	require.Nil(t, err)
	assert.NotContains(t, buf.String(), "Content-Disposition: attachment")
}
