package entrypoint

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/wrouesnel/posterserv/pkg/fonts"
	"github.com/wrouesnel/posterserv/pkg/overlay"
	"github.com/wrouesnel/posterserv/pkg/poster"
	"github.com/wrouesnel/posterserv/pkg/provider"
	"github.com/wrouesnel/posterserv/pkg/server/presetconfig"
	"github.com/wrouesnel/posterserv/pkg/session"
	"github.com/wrouesnel/posterserv/version"
)

// providerSet is the generative backends for one command run.
type providerSet struct {
	content provider.ContentGenerator
	images  provider.ImageGenerator
	titles  provider.TitleSummarizer
	close   func()
}

func (p providerSet) Close() {
	if p.close != nil {
		p.close()
	}
}

func unavailableProviders(err error) providerSet {
	unavailable := provider.Unavailable{Err: err}
	return providerSet{content: unavailable, images: unavailable, titles: unavailable}
}

func newHTTPClient() *resty.Client {
	return resty.New().
		SetHeader("User-Agent", fmt.Sprintf("%s/%s", version.Name, version.Version))
}

func newOverlay(config overlay.Config, httpClient *resty.Client) (*overlay.Overlay, error) {
	english, telugu, err := fonts.LoadConfig(CLI.Fonts)
	if err != nil {
		return nil, errors.Wrap(err, "newOverlay")
	}
	fontSet := overlay.FontSet{
		English: overlay.NewFontCalculator(english),
		Telugu:  overlay.NewFontCalculator(telugu),
	}
	return overlay.New(&config, fontSet, overlay.NewLoader(httpClient, &config)), nil
}

func newProviders(ctx context.Context, httpClient *resty.Client) (providerSet, error) {
	gemini, err := provider.NewGemini(ctx, &CLI.Provider)
	if err != nil {
		return providerSet{}, errors.Wrap(err, "newProviders")
	}
	imagen, err := provider.NewImagen(&CLI.Provider, httpClient)
	if err != nil {
		_ = gemini.Close()
		return providerSet{}, errors.Wrap(err, "newProviders")
	}
	return providerSet{
		content: gemini,
		images:  imagen,
		titles:  gemini,
		close:   func() { _ = gemini.Close() },
	}, nil
}

func newPosterService(providers providerSet, compositor poster.Compositor) *poster.Service {
	return poster.NewService(&CLI.Poster, providers.content, providers.images, providers.titles,
		compositor, session.NewStore())
}

func loadPresets(dir string) (*presetconfig.Config, error) {
	presets, err := presetconfig.LoadDefault()
	if err != nil {
		return nil, errors.Wrap(err, "loadPresets")
	}
	presets, err = presetconfig.LoadDir(presets, dir)
	return presets, errors.Wrap(err, "loadPresets")
}
