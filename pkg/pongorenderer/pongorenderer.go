package pongorenderer

import (
	"bytes"
	"io"
	"io/fs"
	"path"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/html"
)

const htmlMimeType = "text/html"

// fsLoader loads pongo2 templates from an fs.FS.
type fsLoader struct {
	root fs.FS
}

func (l fsLoader) Abs(base, name string) string {
	if path.IsAbs(name) || base == "" {
		return path.Clean(name)
	}
	return path.Join(path.Dir(base), name)
}

func (l fsLoader) Get(name string) (io.Reader, error) {
	data, err := fs.ReadFile(l.root, name)
	if err != nil {
		return nil, errors.Wrapf(err, "fsLoader.Get: %s", name)
	}
	return bytes.NewReader(data), nil
}

type Renderer struct {
	templateSet *pongo2.TemplateSet
	minify      *minify.M
}

// NewRenderer loads templates from root. With debug set templates are re-read on every render.
func NewRenderer(root fs.FS, debug bool) Renderer {
	templateSet := pongo2.NewSet("web", fsLoader{root: root})
	templateSet.Debug = debug

	minifier := minify.New()
	minifier.AddFunc(htmlMimeType, html.Minify)

	return Renderer{
		templateSet: templateSet,
		minify:      minifier,
	}
}

// Render impements echo.Renderer. Pongo2 context data is placed under the prefix "t"
// for access within templates.
func (r Renderer) Render(writer io.Writer, templateName string, templateData interface{}, _ echo.Context) error {
	template, err := r.templateSet.FromCache(templateName)
	if err != nil {
		return errors.Wrapf(err, "pongorenderer.Render: loading template failed %s", templateName)
	}

	templateContext := pongo2.Context{}
	templateContext["t"] = templateData

	var buf bytes.Buffer
	if err := template.ExecuteWriter(templateContext, &buf); err != nil {
		return errors.Wrapf(err, "pongorenderer.Render: executing template failed %s", templateName)
	}

	return errors.Wrapf(r.minify.Minify(htmlMimeType, writer, &buf), "pongorenderer.Render: minify failed %s", templateName)
}
