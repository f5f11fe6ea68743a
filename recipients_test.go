package mailmerge

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRecipients(t *testing.T) {
	path := writeCSV(t, "Company Name,Contact Name,Email\nAcme,Jane,jane@acme.example\nGlobex,Tom,tom@globex.example\n")

	records, err := LoadRecipients(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Acme", records[0].Get("Company Name"))
	assert.Equal(t, "jane@acme.example", records[0].Get("Email"))
	assert.Equal(t, "Globex", records[1].Get("Company Name"))
}

func TestLoadRecipientsPreservesColumnOrder(t *testing.T) {
	path := writeCSV(t, "Zeta,Alpha,Email\n1,2,x@example.com\n")

	records, err := LoadRecipients(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Zeta", "Alpha", "Email"}, records[0].Fields())
}

func TestLoadRecipientsShortRowPadsMissingFields(t *testing.T) {
	path := writeCSV(t, "Company Name,Contact Name,Email\nAcme\n")

	records, err := LoadRecipients(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Acme", records[0].Get("Company Name"))
	assert.Equal(t, "", records[0].Get("Contact Name"))
	assert.Equal(t, "", records[0].Get("Email"))

	_, ok := records[0].Lookup("Email")
	assert.True(t, ok, "padded fields should still be present")
}

func TestLoadRecipientsQuotedFields(t *testing.T) {
	path := writeCSV(t, "Company Name,Email\n\"Smith, Jones & Co\",info@smithjones.example\n")

	records, err := LoadRecipients(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Smith, Jones & Co", records[0].Get("Company Name"))
}

func TestLoadRecipientsHeaderOnly(t *testing.T) {
	path := writeCSV(t, "Company Name,Email\n")

	records, err := LoadRecipients(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRecipientsEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	records, err := LoadRecipients(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRecipientsMissingFile(t *testing.T) {
	_, err := LoadRecipients(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestRecordSetAndGet(t *testing.T) {
	rec := NewRecord()
	rec.Set("A", "1")
	rec.Set("B", "2")
	rec.Set("A", "updated")

	assert.Equal(t, "updated", rec.Get("A"))
	assert.Equal(t, []string{"A", "B"}, rec.Fields(), "replacing a value must not duplicate the field")
	assert.Equal(t, 2, rec.Len())

	_, ok := rec.Lookup("C")
	assert.False(t, ok)
	assert.Equal(t, "", rec.Get("C"))
}

func TestRecordFieldsReturnsCopy(t *testing.T) {
	rec := NewRecord()
	rec.Set("A", "1")

	fields := rec.Fields()
	fields[0] = "mutated"
	assert.Equal(t, []string{"A"}, rec.Fields())
}
