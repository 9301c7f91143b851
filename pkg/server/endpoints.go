package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flowchartsman/swaggerui"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// ReadinessCheck returns an error while a dependency cannot serve requests.
type ReadinessCheck func() error

func EchoSwaggerUIHandler(uiPath string, swaggerUISpec []byte) echo.HandlerFunc {
	uiPath = strings.TrimRight(uiPath, "/")
	uiPathWithSlash := fmt.Sprintf("%s/", uiPath)
	handler := http.StripPrefix(uiPath, swaggerui.Handler(swaggerUISpec))
	return func(c echo.Context) error {
		request := c.Request()
		// The Swagger UI handler redirects to / on an empty path, which is the application root.
		if request.URL.Path == uiPath {
			return c.Redirect(http.StatusMovedPermanently, uiPathWithSlash)
		}

		handler.ServeHTTP(c.Response(), request)
		return nil
	}
}

// Live returns 200 OK if the application server is still functional and able
// to handle requests.
func Live(c echo.Context) error {
	resp := &LivenessResponse{RespondedAt: time.Now()}
	return c.JSON(http.StatusOK, resp)
}

// Ready returns 200 OK while every check passes, and 503 listing the failures otherwise.
func Ready(checks ...ReadinessCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		failures := lo.FilterMap(checks, func(check ReadinessCheck, _ int) (string, bool) {
			if err := check(); err != nil {
				return err.Error(), true
			}
			return "", false
		})

		resp := &ReadinessResponse{RespondedAt: time.Now(), Failures: failures}
		if len(failures) > 0 {
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// Started returns 200 OK once the application is started.
func Started(c echo.Context) error {
	resp := &StartedResponse{RespondedAt: time.Now()}
	return c.JSON(http.StatusOK, resp)
}

// ProbesConfigure registers the liveness, readiness and startup probes.
func ProbesConfigure(checks ...ReadinessCheck) func(e *echo.Echo) error {
	return func(e *echo.Echo) error {
		e.GET("/-/ready", Ready(checks...))
		e.GET("/-/live", Live)
		e.GET("/-/started", Started)
		return nil
	}
}
