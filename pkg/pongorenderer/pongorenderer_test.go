package pongorenderer

import (
	"bytes"
	"testing"
	"testing/fstest"

	qt "github.com/frankban/quicktest"
)

func TestRenderMinifiesHTML(t *testing.T) {
	c := qt.New(t)
	root := fstest.MapFS{
		"base.html.p2": {Data: []byte("<html>\n  <body>\n    {% block content %}{% endblock %}\n  </body>\n</html>\n")},
		"page.html.p2": {Data: []byte("{% extends \"base.html.p2\" %}{% block content %}<p>  Hello   {{ t.Name }}  </p>{% endblock %}")},
	}
	r := NewRenderer(root, false)

	var buf bytes.Buffer
	err := r.Render(&buf, "page.html.p2", struct{ Name string }{"Ugadi"}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(buf.String(), qt.Contains, "<p>Hello Ugadi</p>")
	c.Assert(buf.String(), qt.Not(qt.Contains), "\n")
}

func TestRenderMissingTemplate(t *testing.T) {
	c := qt.New(t)
	r := NewRenderer(fstest.MapFS{}, true)
	var buf bytes.Buffer
	c.Assert(r.Render(&buf, "missing.html.p2", nil, nil), qt.IsNotNil)
}
