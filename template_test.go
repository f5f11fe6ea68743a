package mailmerge

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "subject separator and body",
			input:       "Subject: Hello {{Contact Name}}\n---\nHi {{Contact Name}},\n\nBest,\nAlex\n",
			wantSubject: "Hello {{Contact Name}}",
			wantBody:    "Hi {{Contact Name}},\n\nBest,\nAlex\n",
		},
		{
			name:        "separator content is discarded",
			input:       "Subject: Hi\nanything at all here\nbody\n",
			wantSubject: "Hi",
			wantBody:    "body\n",
		},
		{
			name:        "missing subject prefix keeps line verbatim",
			input:       "Re: Hello\n---\nbody\n",
			wantSubject: "Re: Hello",
			wantBody:    "body\n",
		},
		{
			name:        "subject is trimmed",
			input:       "Subject:   padded subject  \n---\nbody\n",
			wantSubject: "padded subject",
			wantBody:    "body\n",
		},
		{
			name:        "empty body",
			input:       "Subject: Hi\n---\n",
			wantSubject: "Hi",
			wantBody:    "",
		},
		{
			name:        "no trailing newline on body",
			input:       "Subject: Hi\n---\nlast line",
			wantSubject: "Hi",
			wantBody:    "last line",
		},
		{
			name:        "blank lines inside body survive",
			input:       "Subject: Hi\n---\npara one\n\npara two\n",
			wantSubject: "Hi",
			wantBody:    "para one\n\npara two\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, tmpl.Subject)
			assert.Equal(t, tt.wantBody, tmpl.Body)
		})
	}
}

func TestParseTemplateMalformed(t *testing.T) {
	for _, input := range []string{"", "Subject: only one line\n", "no newline at all"} {
		_, err := ParseTemplate(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedTemplate)

		var te *TemplateError
		assert.ErrorAs(t, err, &te)
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "email_template.txt")
	content := "Subject: Hello {{Company Name}}\n---\nHi there,\nthis is the body.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello {{Company Name}}", tmpl.Subject)
	assert.Equal(t, "Hi there,\nthis is the body.\n", tmpl.Body)
}

func TestLoadTemplateMissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestLoadTemplateMalformedCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(path, []byte("just one line"), 0o644))

	_, err := LoadTemplate(path)
	require.Error(t, err)

	var te *TemplateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, path, te.Path)
}

func TestRender(t *testing.T) {
	rec := NewRecord()
	rec.Set("Company Name", "Acme Widgets")
	rec.Set("Contact Name", "Jane")

	got := Render("Hi {{Contact Name}} at {{Company Name}}", rec)
	assert.Equal(t, "Hi Jane at Acme Widgets", got)
}

func TestRenderUnknownPlaceholderLeftVerbatim(t *testing.T) {
	rec := NewRecord()
	rec.Set("Company Name", "Acme")

	got := Render("{{Company Name}} / {{Discount Code}}", rec)
	assert.Equal(t, "Acme / {{Discount Code}}", got)
}

func TestRenderRepeatedPlaceholder(t *testing.T) {
	rec := NewRecord()
	rec.Set("City", "Portland")

	got := Render("{{City}}, {{City}}!", rec)
	assert.Equal(t, "Portland, Portland!", got)
}

// Substitution runs in column order, so a value containing a later
// column's placeholder gets substituted again by that column.
func TestRenderColumnOrderCascade(t *testing.T) {
	rec := NewRecord()
	rec.Set("A", "start {{B}} end")
	rec.Set("B", "middle")

	assert.Equal(t, "start middle end", Render("{{A}}", rec))

	// With the columns reversed the cascade does not happen.
	rev := NewRecord()
	rev.Set("B", "middle")
	rev.Set("A", "start {{B}} end")

	assert.Equal(t, "start {{B}} end", Render("{{A}}", rev))
}

func TestRenderEmptyValue(t *testing.T) {
	rec := NewRecord()
	rec.Set("Contact Name", "")

	assert.Equal(t, "Hi ,", Render("Hi {{Contact Name}},", rec))
}
