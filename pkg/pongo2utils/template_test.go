package pongo2utils

import (
	"testing"

	"github.com/flosch/pongo2/v6"
	qt "github.com/frankban/quicktest"
)

func TestTemplateUnmarshalAndRender(t *testing.T) {
	c := qt.New(t)
	var tmpl Template
	c.Assert(tmpl.Empty(), qt.IsTrue)
	c.Assert(tmpl.UnmarshalText([]byte("  Hello {{ name }}!  ")), qt.IsNil)
	c.Assert(tmpl.Empty(), qt.IsFalse)

	out, err := tmpl.Render(pongo2.Context{"name": "Ugadi"})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "Hello Ugadi!")
}

func TestTemplateInvalid(t *testing.T) {
	c := qt.New(t)
	var tmpl Template
	c.Assert(tmpl.UnmarshalText([]byte("{% if %}")), qt.ErrorMatches, "UnmarshalText: .*")
	c.Assert(tmpl.Template, qt.Not(qt.IsNil))
}

func TestTemplateOrDefault(t *testing.T) {
	c := qt.New(t)
	var empty *Template
	tmpl, err := empty.OrDefault([]byte("fallback {{ x }}"))
	c.Assert(err, qt.IsNil)
	out, err := tmpl.Render(pongo2.Context{"x": 1})
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "fallback 1")

	custom := &Template{}
	c.Assert(custom.UnmarshalText([]byte("custom")), qt.IsNil)
	chosen, err := custom.OrDefault([]byte("fallback"))
	c.Assert(err, qt.IsNil)
	c.Assert(chosen, qt.Equals, custom)
}
