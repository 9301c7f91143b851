package provider

import (
	"github.com/pkg/errors"

	"github.com/wrouesnel/posterserv/assets"
	"github.com/wrouesnel/posterserv/pkg/pongo2utils"
)

// loadPrompt returns override when set, otherwise the embedded prompt template of that name.
func loadPrompt(override *pongo2utils.Template, name string) (*pongo2utils.Template, error) {
	if !override.Empty() {
		return override, nil
	}
	source, err := assets.ReadFile("prompts/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "loadPrompt: %s", name)
	}
	tmpl, err := override.OrDefault(source)
	return tmpl, errors.Wrapf(err, "loadPrompt: %s", name)
}
