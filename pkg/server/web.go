package server

import (
	"github.com/samber/lo"

	"github.com/wrouesnel/posterserv/pkg/server/presetconfig"
	"github.com/wrouesnel/posterserv/version"
)

type indexPreset struct {
	Name        string
	Description string
	Language    string
	Example     string
}

// indexPage is the template data for the poster studio page.
type indexPage struct {
	Name      string
	Version   string
	Prefix    string
	APIPrefix string
	Presets   []indexPreset
}

func newIndexPage(prefix string, apiPrefix string, presets *presetconfig.Config) indexPage {
	page := indexPage{
		Name:      version.Name,
		Version:   version.Version,
		Prefix:    prefix,
		APIPrefix: apiPrefix,
	}
	if presets == nil {
		return page
	}

	page.Presets = lo.FilterMap(presets.Names(), func(name string, _ int) (indexPreset, bool) {
		preset, err := presets.Get(name)
		if err != nil {
			return indexPreset{}, false
		}
		example, err := preset.RenderIdea(preset.Example)
		if err != nil {
			return indexPreset{}, false
		}
		return indexPreset{
			Name:        name,
			Description: preset.Description,
			Language:    preset.Language,
			Example:     example,
		}, true
	})
	return page
}
