package provider

import (
	"context"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/wrouesnel/posterserv/pkg/pongo2utils"
)

const (
	contentTemperature = 0.9
	titleMaxTokens     = 20
)

// textModel is the part of *genai.GenerativeModel used here.
type textModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini implements ContentGenerator and TitleSummarizer on the Gemini API.
type Gemini struct {
	client        *genai.Client
	content       textModel
	title         textModel
	contentPrompt *pongo2utils.Template
	titlePrompt   *pongo2utils.Template
	logger        *zap.Logger
}

func NewGemini(ctx context.Context, config *Config) (*Gemini, error) {
	if config.APIKey == "" {
		return nil, errors.Wrap(ErrAuthentication, "NewGemini: no API key configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, classify(err, "NewGemini")
	}

	contentModel := client.GenerativeModel(config.ContentModel)
	contentModel.ResponseMIMEType = "application/json"
	contentModel.SetTemperature(contentTemperature)

	titleModel := client.GenerativeModel(config.TitleModel)
	titleModel.SetMaxOutputTokens(titleMaxTokens)

	g, err := newGemini(contentModel, titleModel, &config.ContentPrompt, &config.TitlePrompt)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	g.client = client
	return g, nil
}

func newGemini(content textModel, title textModel, contentPrompt, titlePrompt *pongo2utils.Template) (*Gemini, error) {
	contentTmpl, err := loadPrompt(contentPrompt, "content.p2")
	if err != nil {
		return nil, errors.Wrap(err, "newGemini")
	}
	titleTmpl, err := loadPrompt(titlePrompt, "title.p2")
	if err != nil {
		return nil, errors.Wrap(err, "newGemini")
	}

	return &Gemini{
		content:       content,
		title:         title,
		contentPrompt: contentTmpl,
		titlePrompt:   titleTmpl,
		logger:        zap.L().With(zap.String("subsystem", "gemini")),
	}, nil
}

// Close releases the underlying client connection.
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return errors.Wrap(g.client.Close(), "Gemini.Close")
}

// GenerateContent asks the model for a theme and poster copy, validates the JSON it returns
// and blanks the text the requested language excludes.
func (g *Gemini) GenerateContent(ctx context.Context, idea string, lang Language) (Content, error) {
	prompt, err := g.contentPrompt.Render(pongo2.Context{"idea": idea, "language": string(lang)})
	if err != nil {
		return Content{}, errors.Wrap(err, "GenerateContent: prompt")
	}

	g.logger.Debug("Requesting poster content", zap.String("language", string(lang)))
	resp, err := g.content.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Content{}, classify(err, "GenerateContent")
	}

	text := responseText(resp)
	if text == "" {
		return Content{}, errors.Wrap(ErrMalformedResponse, "GenerateContent: empty response")
	}

	content, err := parseContent(text)
	if err != nil {
		g.logger.Debug("Unparseable content response", zap.String("response", text), zap.Error(err))
		return Content{}, errors.Wrap(err, "GenerateContent")
	}
	return content.Constrain(lang), nil
}

// SummarizeTitle never fails; any problem yields an empty title.
func (g *Gemini) SummarizeTitle(ctx context.Context, idea string) string {
	prompt, err := g.titlePrompt.Render(pongo2.Context{"idea": idea})
	if err != nil {
		g.logger.Warn("Title prompt failed to render", zap.Error(err))
		return ""
	}

	resp, err := g.title.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Warn("Title summarization failed", zap.Error(classify(err, "SummarizeTitle")))
		return ""
	}
	return cleanTitle(responseText(resp))
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}

func cleanTitle(raw string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	line = strings.Trim(strings.TrimSpace(line), "\"'*`#")
	line = strings.TrimRight(line, ".!:;")
	return strings.TrimSpace(line)
}
