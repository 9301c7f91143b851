package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brpaz/echozap"
	"github.com/deepmap/oapi-codegen/pkg/middleware"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wrouesnel/posterserv/api/v1"
	"github.com/wrouesnel/posterserv/assets"
	"github.com/wrouesnel/posterserv/pkg/pongorenderer"
	"github.com/wrouesnel/posterserv/pkg/server/presetconfig"
	"github.com/wrouesnel/posterserv/version"
)

const indexTemplate = "index.html.p2"

type ApiServerConfig struct {
	Prefix          string        `help:"Prefix the API is being served under, if any"`
	Host            string        `help:"Host the API should be served on" default:""`
	Port            int           `help:"Port to serve on" default:"8080"`
	ShutdownTimeout time.Duration `help:"Time allowed for in-flight requests on shutdown" default:"30s"`
}

var (
	ErrApiInitializationFailed = errors.New("API failed to initialize")
)

// Api launches an ApiV1 instance server and manages it's lifecycle.
func Api(ctx context.Context, serverConfig ApiServerConfig, apiConfig *api.Config, debugTemplates bool, ready ...ReadinessCheck) error {
	logger := zap.L()
	logger.Info("Starting API server")
	apiInstance, apiPrefix := api.NewAPI(apiConfig)

	if apiInstance == nil {
		err := ErrApiInitializationFailed
		logger.Error("API failed to initialize", zap.Error(err))
		return ErrApiInitializationFailed
	}

	webRoot, err := assets.Sub("web")
	if err != nil {
		return errors.Wrap(err, "Api: web assets unavailable")
	}
	renderer := pongorenderer.NewRenderer(webRoot, debugTemplates)

	// Start the API
	if err := Server(ctx, serverConfig,
		ProbesConfigure(ready...),
		ApiConfigure(serverConfig, apiInstance, apiPrefix),
		WebConfigure(serverConfig, renderer, apiPrefix, apiConfig.Presets)); err != nil {
		logger.Error("Error from server", zap.Error(err))
		return errors.Wrap(err, "Server exiting with error")
	}

	return nil
}

// ApiConfigure implements the logic necessary to launch an API from a server config and a server.
// The primary difference to Api() is that the apInstance interface is explicitly passed.
func ApiConfigure[T api.ServerInterface](serverConfig ApiServerConfig, apiInstance T, apiPrefix string) func(e *echo.Echo) error {
	return func(e *echo.Echo) error {
		var logger = zap.L().With(zap.String("subsystem", "server"))

		fullApiPrefix := fmt.Sprintf("%s/api/%s", serverConfig.Prefix, apiPrefix)
		logger.Info("Initializing API with apiPrefix",
			zap.String("configured_prefix", serverConfig.Prefix),
			zap.String("api_prefix", apiPrefix),
			zap.String("api_basepath", fullApiPrefix))

		swagger, err := api.LoadSwagger(fullApiPrefix)
		if err != nil {
			return errors.Wrap(err, "ApiConfigure")
		}

		group := e.Group(fullApiPrefix, middleware.OapiRequestValidator(swagger))
		api.RegisterHandlersWithBaseURL(group, apiInstance, "")
		// Add the Swagger API as the frontend.
		uiPrefix := fmt.Sprintf("%s/ui", fullApiPrefix)
		uiHandler := EchoSwaggerUIHandler(uiPrefix, api.OpenAPISpec)
		e.GET(uiPrefix, uiHandler)
		e.GET(fmt.Sprintf("%s/*", uiPrefix), uiHandler)
		logger.Info("Swagger UI configured apiPrefix", zap.String("ui_path", uiPrefix))

		return nil
	}
}

// WebConfigure serves the poster studio page and its static files.
func WebConfigure(serverConfig ApiServerConfig, renderer echo.Renderer, apiPrefix string, presets *presetconfig.Config) func(e *echo.Echo) error {
	return func(e *echo.Echo) error {
		staticRoot, err := assets.Sub("web/static")
		if err != nil {
			return errors.Wrap(err, "WebConfigure")
		}

		e.Renderer = renderer
		page := newIndexPage(serverConfig.Prefix, fmt.Sprintf("%s/api/%s", serverConfig.Prefix, apiPrefix), presets)
		e.GET(fmt.Sprintf("%s/", serverConfig.Prefix), func(c echo.Context) error {
			return c.Render(http.StatusOK, indexTemplate, page)
		})

		staticPath := fmt.Sprintf("%s/static/*", serverConfig.Prefix)
		e.GET(staticPath, StaticGet(staticRoot))
		e.HEAD(staticPath, StaticHead(staticRoot))
		return nil
	}
}

// Server configures and starts an Echo server with standard capabilities, and configuration functions.
// The server shuts down gracefully when ctx is cancelled.
func Server(ctx context.Context, serverConfig ApiServerConfig, ConfigFns ...func(e *echo.Echo) error) error {
	logger := zap.L().With(zap.String("subsystem", "server"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(io.Discard)

	// Setup Prometheus monitoring
	p := prometheus.NewPrometheus(version.Name, nil)
	p.Use(e)

	// Setup logging
	e.Use(echozap.ZapLogger(zap.L()))

	for _, configFn := range ConfigFns {
		if err := configFn(e); err != nil {
			logger.Error("Failed calling configuration function", zap.Error(err))
			return errors.Wrap(err, "Server: configuration failed")
		}
	}

	listenAddr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("listen_addr", listenAddr))
		errCh <- e.Start(listenAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "Server: shutdown failed")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
