package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wrouesnel/posterserv/pkg/pongo2utils"
)

const defaultImageMimeType = "image/png"

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Imagen implements ImageGenerator against the Imagen predict REST endpoint.
type Imagen struct {
	httpClient  *resty.Client
	endpoint    string
	model       string
	apiKey      string
	aspectRatio string
	timeout     time.Duration
	prompt      *pongo2utils.Template
	logger      *zap.Logger
}

func NewImagen(config *Config, httpClient *resty.Client) (*Imagen, error) {
	if config.APIKey == "" {
		return nil, errors.Wrap(ErrAuthentication, "NewImagen: no API key configured")
	}
	prompt, err := loadPrompt(&config.ImagePrompt, "image.p2")
	if err != nil {
		return nil, errors.Wrap(err, "NewImagen")
	}

	return &Imagen{
		httpClient:  httpClient,
		endpoint:    strings.TrimRight(config.Endpoint, "/"),
		model:       config.ImageModel,
		apiKey:      config.APIKey,
		aspectRatio: config.AspectRatio,
		timeout:     config.Timeout,
		prompt:      prompt,
		logger:      zap.L().With(zap.String("subsystem", "imagen")),
	}, nil
}

// GenerateImage requests a single text-free background for theme.
func (im *Imagen) GenerateImage(ctx context.Context, theme string) (*Image, error) {
	prompt, err := im.prompt.Render(pongo2.Context{"theme": theme})
	if err != nil {
		return nil, errors.Wrap(err, "GenerateImage: prompt")
	}

	if im.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.timeout)
		defer cancel()
	}

	target := fmt.Sprintf("%s/models/%s:predict", im.endpoint, im.model)
	im.logger.Debug("Requesting background image", zap.String("target", target))

	result := new(predictResponse)
	apiErr := new(apiErrorResponse)
	resp, err := im.httpClient.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", im.apiKey).
		SetBody(&predictRequest{
			Instances:  []predictInstance{{Prompt: prompt}},
			Parameters: predictParameters{SampleCount: 1, AspectRatio: im.aspectRatio},
		}).
		SetResult(result).
		SetError(apiErr).
		Post(target)
	if err != nil {
		return nil, errors.Wrapf(ErrProvider, "GenerateImage: %v", err)
	}

	if resp.IsError() {
		if isAuthStatus(resp.StatusCode()) {
			return nil, errors.Wrapf(ErrAuthentication, "GenerateImage: %s %s", resp.Status(), apiErr.Error.Message)
		}
		return nil, errors.Wrapf(ErrProvider, "GenerateImage: %s %s", resp.Status(), apiErr.Error.Message)
	}

	if len(result.Predictions) == 0 || result.Predictions[0].BytesBase64Encoded == "" {
		return nil, errors.Wrap(ErrNoImage, "GenerateImage")
	}

	first := result.Predictions[0]
	data, err := base64.StdEncoding.DecodeString(first.BytesBase64Encoded)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "GenerateImage: %v", err)
	}

	mimeType := first.MimeType
	if mimeType == "" {
		mimeType = defaultImageMimeType
	}
	return &Image{Data: data, MimeType: mimeType}, nil
}
