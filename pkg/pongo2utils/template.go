package pongo2utils

import (
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Template is a pongo2 template that can be set from the command line or a config file.
type Template struct {
	*pongo2.Template
	Source string
}

// UnmarshalText implements encoding.TextUnmarshaler so kong can decode templates.
func (t *Template) UnmarshalText(text []byte) error {
	t.Source = string(text)
	loadedTemplate, err := pongo2.FromBytes(text)
	if loadedTemplate == nil {
		t.Template = lo.Must(pongo2.FromBytes([]byte("")))
	} else {
		t.Template = loadedTemplate
	}
	if err != nil {
		return errors.Wrap(err, "UnmarshalText")
	}

	return nil
}

// Empty is true when no template text has been supplied.
func (t *Template) Empty() bool {
	return t == nil || t.Template == nil || strings.TrimSpace(t.Source) == ""
}

// OrDefault returns t, or a template parsed from fallback when t is empty.
func (t *Template) OrDefault(fallback []byte) (*Template, error) {
	if !t.Empty() {
		return t, nil
	}
	result := new(Template)
	return result, result.UnmarshalText(fallback)
}

// Render executes the template and trims surrounding whitespace from the result.
func (t *Template) Render(ctx pongo2.Context) (string, error) {
	if t.Empty() {
		return "", errors.New("Render: template is empty")
	}
	out, err := t.Execute(ctx)
	if err != nil {
		return "", errors.Wrap(err, "Render")
	}
	return strings.TrimSpace(out), nil
}
