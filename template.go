package mailmerge

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// subjectPrefix is the literal marker on the first line of a template
// resource.
const subjectPrefix = "Subject: "

// Template is a parsed campaign template: a subject line and a body,
// both carrying {{field}} placeholders that Render fills in per
// recipient. A Template is immutable after parsing.
type Template struct {
	Subject string
	Body    string
}

// LoadTemplate reads and parses the template resource at path.
// The returned error wraps fs.ErrNotExist when the file is missing and
// ErrMalformedTemplate when the resource has fewer than two lines.
func LoadTemplate(path string) (*Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template file %s: %w", path, err)
	}

	t, err := ParseTemplate(string(b))
	if err != nil {
		var te *TemplateError
		if errors.As(err, &te) {
			te.Path = path
		}
		return nil, err
	}
	return t, nil
}

// ParseTemplate parses a template resource. Line 1 must carry the
// subject ("Subject: " prefix stripped, remainder trimmed), line 2 is a
// separator and is discarded whatever it contains, and every line from
// line 3 on becomes the body verbatim, internal line breaks included.
// A resource with fewer than two lines is rejected with an error
// wrapping ErrMalformedTemplate.
func ParseTemplate(s string) (*Template, error) {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, NewTemplateError("", "parse",
			"resource must have a subject line and a separator line", ErrMalformedTemplate)
	}

	subject := strings.TrimSpace(strings.TrimPrefix(lines[0], subjectPrefix))
	body := strings.Join(lines[2:], "")

	return &Template{Subject: subject, Body: body}, nil
}

// Render substitutes {{field}} placeholders in s with the record's
// values. Each field is applied as a literal full-string replacement in
// source column order, so a value substituted by an earlier column can
// itself be matched by a later column's placeholder. Placeholders
// naming fields the record does not carry are left verbatim; that is a
// policy, not an error.
func Render(s string, rec Record) string {
	for _, name := range rec.Fields() {
		s = strings.ReplaceAll(s, "{{"+name+"}}", rec.Get(name))
	}
	return s
}
