// Package poster runs the poster generation pipeline: copy and theme generation, background
// image generation and text composition, recording each request as a conversation item.
package poster

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wrouesnel/posterserv/pkg/overlay"
	"github.com/wrouesnel/posterserv/pkg/provider"
	"github.com/wrouesnel/posterserv/pkg/session"
)

// Config configures the pipeline.
type Config struct {
	Timeout time.Duration `help:"Timeout for generating one poster, 0 disables" default:"5m"`
}

// Compositor paints poster text over a background image.
type Compositor interface {
	Composite(ctx context.Context, backgroundURL string, english string, telugu string) (*overlay.CompositionResult, error)
}

// Request is a single poster request.
type Request struct {
	// ConversationID continues an existing conversation; empty starts a new one.
	ConversationID string
	Idea           string
	Language       provider.Language
}

// Poster is the output of one successful pipeline run.
type Poster struct {
	Content provider.Content
	Result  *overlay.CompositionResult
}

// Service generates posters and tracks them in a session store.
type Service struct {
	content    provider.ContentGenerator
	images     provider.ImageGenerator
	titles     provider.TitleSummarizer
	compositor Compositor
	sessions   *session.Store
	timeout    time.Duration
	logger     *zap.Logger
}

func NewService(config *Config, content provider.ContentGenerator, images provider.ImageGenerator,
	titles provider.TitleSummarizer, compositor Compositor, sessions *session.Store) *Service {
	return &Service{
		content:    content,
		images:     images,
		titles:     titles,
		compositor: compositor,
		sessions:   sessions,
		timeout:    config.Timeout,
		logger:     zap.L().With(zap.String("subsystem", "poster")),
	}
}

// Sessions exposes the store the service records into.
func (s *Service) Sessions() *session.Store {
	return s.sessions
}

// withTimeout bounds ctx by the configured per-poster timeout, if any.
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Run executes the pipeline without recording anything.
func (s *Service) Run(ctx context.Context, idea string, lang provider.Language) (*Poster, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.run(ctx, idea, lang)
}

func (s *Service) run(ctx context.Context, idea string, lang provider.Language) (*Poster, error) {
	content, err := s.content.GenerateContent(ctx, idea, lang)
	if err != nil {
		return nil, errors.Wrap(err, "Run: content generation")
	}
	s.logger.Debug("Generated poster content", zap.String("theme", content.Theme),
		zap.String("english_text", content.EnglishText), zap.String("telugu_text", content.TeluguText))

	background, err := s.images.GenerateImage(ctx, content.Theme)
	if err != nil {
		return nil, errors.Wrap(err, "Run: image generation")
	}

	result, err := s.compositor.Composite(ctx, overlay.EncodeDataURI(background.MimeType, background.Data),
		content.EnglishText, content.TeluguText)
	if err != nil {
		return nil, errors.Wrap(err, "Run: composition")
	}

	return &Poster{Content: content, Result: result}, nil
}

// Generate records a new item for the request, runs the pipeline and stores the outcome on the
// item. Pipeline failures become the item's error state; only invalid requests return an error.
// The configured timeout covers title summarization as well as the pipeline.
func (s *Service) Generate(ctx context.Context, req Request) (session.Conversation, session.Item, error) {
	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		return session.Conversation{}, session.Item{}, ErrEmptyIdea
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	conv, err := s.conversation(ctx, req.ConversationID, idea)
	if err != nil {
		return session.Conversation{}, session.Item{}, errors.Wrap(err, "Generate")
	}

	item, err := s.sessions.AddItem(conv.ID, idea, string(req.Language))
	if err != nil {
		return session.Conversation{}, session.Item{}, errors.Wrap(err, "Generate")
	}
	logger := s.logger.With(zap.String("conversation_id", conv.ID), zap.String("item_id", item.ID))

	poster, runErr := s.run(ctx, idea, req.Language)
	item, err = s.sessions.UpdateItem(conv.ID, item.ID, func(item *session.Item) {
		if runErr != nil {
			item.Status = session.StatusFailed
			item.Error = UserMessage(runErr)
			return
		}
		item.Status = session.StatusComplete
		item.Theme = poster.Content.Theme
		item.EnglishText = poster.Content.EnglishText
		item.TeluguText = poster.Content.TeluguText
		item.PosterDataURI = poster.Result.DataURI
		item.Filename = Filename(idea)
	})
	if err != nil {
		return session.Conversation{}, session.Item{}, errors.Wrap(err, "Generate")
	}

	itemsTotal.WithLabelValues(string(item.Status)).Inc()
	if runErr != nil {
		logger.Error("Poster generation failed", zap.Error(runErr))
	} else {
		logger.Info("Poster generated", zap.String("filename", item.Filename))
	}

	conv, err = s.sessions.Get(conv.ID)
	return conv, item, errors.Wrap(err, "Generate")
}

func (s *Service) conversation(ctx context.Context, id string, idea string) (session.Conversation, error) {
	if id != "" {
		return s.sessions.Get(id)
	}

	title := s.titles.SummarizeTitle(ctx, idea)
	if title == "" {
		title = FallbackTitle(idea)
	}
	return s.sessions.Create(title), nil
}
