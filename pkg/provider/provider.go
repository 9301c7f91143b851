// Package provider wraps the generative-AI capabilities the poster pipeline consumes: poster
// copy generation, background image generation and title summarization.
package provider

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrAuthentication    = errors.New("provider rejected credentials")
	ErrProvider          = errors.New("provider request failed")
	ErrNoImage           = errors.New("no image produced")
	ErrUnknownLanguage   = errors.New("unknown language")
)

// Language selects which poster texts are generated.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageTelugu  Language = "telugu"
	LanguageBoth    Language = "both"
)

// ParseLanguage accepts a language name case-insensitively. Empty means both.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageTelugu:
		return LanguageTelugu, nil
	case LanguageBoth, "":
		return LanguageBoth, nil
	default:
		return "", errors.Wrapf(ErrUnknownLanguage, "ParseLanguage: %q", s)
	}
}

// Content is the generated visual theme and poster copy.
type Content struct {
	Theme       string `json:"theme"`
	EnglishText string `json:"englishText"`
	TeluguText  string `json:"teluguText"`
}

// Constrain blanks whichever text the language excludes.
func (c Content) Constrain(lang Language) Content {
	switch lang {
	case LanguageEnglish:
		c.TeluguText = ""
	case LanguageTelugu:
		c.EnglishText = ""
	}
	return c
}

// Image is a generated raster image.
type Image struct {
	Data     []byte
	MimeType string
}

// ContentGenerator produces a theme and poster texts from an idea.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, idea string, lang Language) (Content, error)
}

// ImageGenerator produces a text-free background image for a theme.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, theme string) (*Image, error)
}

// TitleSummarizer produces a short title for an idea, or "" when it cannot.
type TitleSummarizer interface {
	SummarizeTitle(ctx context.Context, idea string) string
}

// Unavailable fails every request with Err. It stands in for providers that could not be
// constructed, such as when no API key is configured, so each request reports the failure.
type Unavailable struct {
	Err error
}

func (u Unavailable) GenerateContent(context.Context, string, Language) (Content, error) {
	return Content{}, u.Err
}

func (u Unavailable) GenerateImage(context.Context, string) (*Image, error) {
	return nil, u.Err
}

func (u Unavailable) SummarizeTitle(context.Context, string) string {
	return ""
}
