package entrypoint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"io/ioutil"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wrouesnel/posterserv/api/v1"
	"github.com/wrouesnel/posterserv/assets"
	"github.com/wrouesnel/posterserv/pkg/overlay"
	"github.com/wrouesnel/posterserv/pkg/poster"
	"github.com/wrouesnel/posterserv/pkg/provider"
	"github.com/wrouesnel/posterserv/pkg/server"
)

var (
	ErrCommandNotImplemented = errors.New("Command not implemented")
)

const posterFileMode = 0o644

func dispatchCommands(ctx *kong.Context, appCtx context.Context, stdOut io.Writer) error {
	var err error
	logger := zap.L().With(zap.String("command", ctx.Command()))

	switch ctx.Command() {
	case "api":
		err = runAPI(appCtx)

	case "composite":
		err = runComposite(appCtx, stdOut)

	case "generate":
		err = runGenerate(appCtx, stdOut)

	case "debug assets list":
		err = fs.WalkDir(assets.Assets(), ".", func(path string, d fs.DirEntry, err error) error {
			_, _ = fmt.Fprintf(stdOut, "%s\n", path)
			return nil
		})

	case "debug assets cat <filename>":
		var content []byte
		if content, err = assets.ReadFile(CLI.Debug.Assets.Cat.Filename); err == nil {
			_, _ = stdOut.Write(content)
		} else {
			logger.Error("Error reading embedded file", zap.Error(err))
		}

	default:
		err = ErrCommandNotImplemented
		logger.Error("Command not implemented")
	}

	if err != nil {
		return errors.Wrap(err, ctx.Command())
	}
	return nil
}

func runAPI(appCtx context.Context) error {
	httpClient := newHTTPClient()
	compositor, err := newOverlay(CLI.Overlay, httpClient)
	if err != nil {
		return err
	}

	readiness := []server.ReadinessCheck{}
	providers, providerErr := newProviders(appCtx, httpClient)
	if providerErr != nil {
		if !errors.Is(providerErr, provider.ErrAuthentication) {
			return providerErr
		}
		// Serve anyway so the page can explain what is wrong.
		zap.L().Warn("AI provider is not configured, poster requests will fail", zap.Error(providerErr))
		providers = unavailableProviders(providerErr)
		readiness = append(readiness, func() error { return providerErr })
	}
	defer providers.Close()

	presets, err := loadPresets(CLI.Api.PresetsDir)
	if err != nil {
		return err
	}

	return server.Api(appCtx, CLI.Api.ApiServerConfig, &api.Config{
		Posters:    newPosterService(providers, compositor),
		Compositor: compositor,
		Presets:    presets,
	}, CLI.Assets.DebugTemplates, readiness...)
}

func runComposite(appCtx context.Context, stdOut io.Writer) error {
	config := CLI.Overlay
	config.AllowFiles = true
	config.AllowRemote = true
	compositor, err := newOverlay(config, newHTTPClient())
	if err != nil {
		return err
	}

	result, err := compositor.Composite(appCtx, CLI.Composite.Background, CLI.Composite.English, CLI.Composite.Telugu)
	if err != nil {
		return errors.Wrap(err, "runComposite")
	}
	return writePoster(stdOut, CLI.Composite.Output, result)
}

func runGenerate(appCtx context.Context, stdOut io.Writer) error {
	lang, err := provider.ParseLanguage(CLI.Generate.Language)
	if err != nil {
		return errors.Wrap(err, "runGenerate")
	}

	httpClient := newHTTPClient()
	compositor, err := newOverlay(CLI.Overlay, httpClient)
	if err != nil {
		return err
	}
	providers, err := newProviders(appCtx, httpClient)
	if err != nil {
		return err
	}
	defer providers.Close()

	result, err := newPosterService(providers, compositor).Run(appCtx, CLI.Generate.Idea, lang)
	if err != nil {
		zap.L().Error(poster.UserMessage(err))
		return errors.Wrap(err, "runGenerate")
	}

	output := CLI.Generate.Output
	if output == "" {
		output = poster.Filename(CLI.Generate.Idea)
	}
	return writePoster(stdOut, output, result.Result)
}

// writePoster writes the PNG payload of result to output and reports the path on stdOut.
func writePoster(stdOut io.Writer, output string, result *overlay.CompositionResult) error {
	_, data, err := overlay.DecodeDataURI(result.DataURI)
	if err != nil {
		return errors.Wrap(err, "writePoster")
	}
	if err := ioutil.WriteFile(output, data, posterFileMode); err != nil {
		return errors.Wrapf(err, "writePoster: %s", output)
	}
	if result.Layout.Overflow {
		zap.L().Warn("Text did not fit at the minimum font size", zap.String("output", output))
	}
	_, _ = fmt.Fprintf(stdOut, "%s %dx%d\n", output, result.Width, result.Height)
	return nil
}
