package api

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.withmatt.com/httpheaders"

	"github.com/wrouesnel/posterserv/pkg/overlay"
	"github.com/wrouesnel/posterserv/pkg/poster"
	"github.com/wrouesnel/posterserv/pkg/provider"
	"github.com/wrouesnel/posterserv/pkg/server/presetconfig"
	"github.com/wrouesnel/posterserv/pkg/session"
	"github.com/wrouesnel/posterserv/version"
)

//go:generate bash -c "oapi-codegen -generate types,server -package api openapi.yaml > api.gen.go"

var (
	ErrPosterNotReady = errors.New("poster is not complete")
)

// apiImpl implements the poster API.
type apiImpl struct {
	version    string
	posters    *poster.Service
	compositor poster.Compositor
	presets    *presetconfig.Config
	logger     *zap.Logger
}

func (a *apiImpl) generateETag(in []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(in))
}

func clientError(ctx echo.Context, status int, description string, err error) error {
	return ctx.JSON(status, &ClientError{
		Description: description,
		Error:       err.Error(),
	})
}

// optional maps empty strings to an omitted field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toPosterItem(conversationID string, item session.Item) PosterItem {
	return PosterItem{
		Id:             item.ID,
		ConversationId: conversationID,
		Query:          item.Query,
		Language:       item.Language,
		Status:         PosterItemStatus(item.Status),
		Theme:          optional(item.Theme),
		EnglishText:    optional(item.EnglishText),
		TeluguText:     optional(item.TeluguText),
		PosterDataUri:  optional(item.PosterDataURI),
		Filename:       optional(item.Filename),
		Error:          optional(item.Error),
		CreatedAt:      item.CreatedAt,
		CompletedAt:    item.CompletedAt,
	}
}

func toConversation(conv session.Conversation) Conversation {
	return Conversation{
		Id:        conv.ID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		Items: lo.Map(conv.Items, func(item session.Item, _ int) PosterItem {
			return toPosterItem(conv.ID, item)
		}),
	}
}

// generate runs a poster request and maps request errors onto client responses.
func (a *apiImpl) generate(ctx echo.Context, req poster.Request) error {
	conv, item, err := a.posters.Generate(ctx.Request().Context(), req)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusCreated, toPosterItem(conv.ID, item))
	case errors.Is(err, poster.ErrEmptyIdea):
		return clientError(ctx, http.StatusBadRequest, "Poster idea must not be empty", err)
	case errors.Is(err, session.ErrConversationNotFound):
		return clientError(ctx, http.StatusNotFound, "Conversation does not exist", err)
	default:
		a.logger.Error("Poster request failed", zap.Error(err))
		return clientError(ctx, http.StatusInternalServerError, "Poster request failed", err)
	}
}

func (a *apiImpl) PostPosters(ctx echo.Context) error {
	var body PostPostersJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return clientError(ctx, http.StatusBadRequest, "Request body could not be decoded", err)
	}

	lang, err := provider.ParseLanguage(string(lo.FromPtr(body.Language)))
	if err != nil {
		return clientError(ctx, http.StatusBadRequest, "Unknown language", err)
	}

	return a.generate(ctx, poster.Request{
		ConversationID: lo.FromPtr(body.ConversationId),
		Idea:           body.Idea,
		Language:       lang,
	})
}

func (a *apiImpl) PostPostersPresetPresetName(ctx echo.Context, presetName string, params PostPostersPresetPresetNameParams) error {
	preset, err := a.presets.Get(presetName)
	if err != nil {
		return clientError(ctx, http.StatusNotFound, "Preset with given name does not exist", err)
	}

	// Preset parameters are free-form so are read from the URL directly.
	queryParams := lo.MapEntries(ctx.Request().URL.Query(), func(queryParamName string, v []string) (string, string) {
		value := ""
		if len(v) > 0 {
			value = v[0]
		}
		return queryParamName, value
	})

	idea, err := preset.RenderIdea(queryParams)
	if err != nil {
		return clientError(ctx, http.StatusInternalServerError, "Preset idea template failed to execute", err)
	}

	langName := preset.Language
	if params.Language != nil {
		langName = string(*params.Language)
	}
	lang, err := provider.ParseLanguage(langName)
	if err != nil {
		return clientError(ctx, http.StatusBadRequest, "Unknown language", err)
	}

	return a.generate(ctx, poster.Request{
		ConversationID: lo.FromPtr(params.ConversationId),
		Idea:           idea,
		Language:       lang,
	})
}

func (a *apiImpl) GetPresets(ctx echo.Context) error {
	presets := lo.Map(a.presets.Names(), func(name string, _ int) Preset {
		preset := lo.Must(a.presets.Get(name))
		example, err := preset.RenderIdea(preset.Example)
		if err != nil {
			a.logger.Debug("Preset example failed to render", zap.String("preset", name), zap.Error(err))
		}
		return Preset{
			Name:        name,
			Description: optional(preset.Description),
			Language:    preset.Language,
			Parameters:  lo.Assign(preset.Parameters),
			ExampleIdea: optional(example),
		}
	})
	return ctx.JSON(http.StatusOK, presets)
}

func (a *apiImpl) PostComposite(ctx echo.Context) error {
	var body PostCompositeJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return clientError(ctx, http.StatusBadRequest, "Request body could not be decoded", err)
	}

	result, err := a.compositor.Composite(ctx.Request().Context(), body.BackgroundUrl,
		lo.FromPtr(body.EnglishText), lo.FromPtr(body.TeluguText))
	switch {
	case err == nil:
	case errors.Is(err, overlay.ErrImageLoad):
		return clientError(ctx, http.StatusUnprocessableEntity, "Background image failed to load", err)
	case errors.Is(err, overlay.ErrSurfaceUnavailable):
		return clientError(ctx, http.StatusUnprocessableEntity, "Background image dimensions are not supported", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return clientError(ctx, http.StatusServiceUnavailable, "Composition was cancelled", err)
	default:
		a.logger.Error("Composition failed", zap.Error(err))
		return clientError(ctx, http.StatusInternalServerError, "Composition failed", err)
	}

	return ctx.JSON(http.StatusOK, &CompositeResponse{
		DataUri:         result.DataURI,
		Width:           result.Width,
		Height:          result.Height,
		EnglishFontSize: result.Layout.English.FontSize,
		TeluguFontSize:  result.Layout.Telugu.FontSize,
		Iterations:      result.Layout.Iterations,
		Overflow:        result.Layout.Overflow,
	})
}

func (a *apiImpl) GetConversations(ctx echo.Context) error {
	summaries := lo.Map(a.posters.Sessions().List(), func(s session.Summary, _ int) ConversationSummary {
		return ConversationSummary{Id: s.ID, Title: s.Title, CreatedAt: s.CreatedAt, ItemCount: s.ItemCount}
	})
	return ctx.JSON(http.StatusOK, summaries)
}

func (a *apiImpl) GetConversationsConversationId(ctx echo.Context, conversationId string) error {
	conv, err := a.posters.Sessions().Get(conversationId)
	if err != nil {
		return clientError(ctx, http.StatusNotFound, "Conversation does not exist", err)
	}
	return ctx.JSON(http.StatusOK, toConversation(conv))
}

func (a *apiImpl) DeleteConversationsConversationId(ctx echo.Context, conversationId string) error {
	if err := a.posters.Sessions().Delete(conversationId); err != nil {
		return clientError(ctx, http.StatusNotFound, "Conversation does not exist", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (a *apiImpl) GetConversationsConversationIdItemsItemIdPosterPng(ctx echo.Context, conversationId string, itemId string) error {
	item, err := a.posters.Sessions().GetItem(conversationId, itemId)
	if err != nil {
		return clientError(ctx, http.StatusNotFound, "Poster does not exist", err)
	}
	if item.Status != session.StatusComplete {
		return clientError(ctx, http.StatusConflict, "Poster is not available", errors.Wrap(ErrPosterNotReady, string(item.Status)))
	}

	_, data, err := overlay.DecodeDataURI(item.PosterDataURI)
	if err != nil {
		return clientError(ctx, http.StatusInternalServerError, "Stored poster could not be decoded", err)
	}

	etag := a.generateETag(data)
	header := ctx.Response().Header()
	header.Set(httpheaders.Etag, etag)
	header.Set(httpheaders.CacheControl, "no-cache")
	if ctx.Request().Header.Get(httpheaders.IfNoneMatch) == etag {
		return ctx.NoContent(http.StatusNotModified)
	}
	header.Set(httpheaders.ContentDisposition, fmt.Sprintf("attachment; filename=%q", item.Filename))
	return ctx.Blob(http.StatusOK, "image/png", data)
}

// Config provides the up-front configuration necessary to launch an API.
type Config struct {
	Posters    *poster.Service
	Compositor poster.Compositor
	Presets    *presetconfig.Config
}

// NewAPI returns the API server instance and the version prefix.
func NewAPI(apiConfig *Config) (ServerInterface, string) {
	if apiConfig.Posters == nil || apiConfig.Compositor == nil {
		return nil, "err"
	}

	presets := apiConfig.Presets
	if presets == nil {
		presets = &presetconfig.Config{Presets: map[string]presetconfig.PresetDefinition{}}
	}

	const apiVersion = "v1"

	return &apiImpl{
		version.Version,
		apiConfig.Posters,
		apiConfig.Compositor,
		presets,
		zap.L().With(zap.String("app_version", version.Version), zap.String("api_version", apiVersion)),
	}, apiVersion
}

// GetOpenapiYaml implements returning the openapi.yaml file.
func (a *apiImpl) GetOpenapiYaml(ctx echo.Context) error {
	header := ctx.Response().Header()
	header.Set(httpheaders.ContentDisposition, "inline; filename=\"openapi.yaml\"")
	return ctx.Blob(http.StatusOK, "application/yaml;text/plain", OpenAPISpec)
}

func (a *apiImpl) GetPing(ctx echo.Context) error {
	now := time.Now()
	status := Ok
	return ctx.JSON(http.StatusOK, &PingResponse{
		RespondedAt: &now,
		Status:      &status,
		Version:     &a.version,
	})
}
