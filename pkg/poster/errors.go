package poster

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wrouesnel/posterserv/pkg/overlay"
	"github.com/wrouesnel/posterserv/pkg/provider"
)

var (
	ErrEmptyIdea = errors.New("poster idea is empty")
)

// User-facing failure messages attached to failed items.
const (
	MessageAuthentication = "The AI service rejected our credentials. Check the API key configuration."
	MessageMalformed      = "The AI service returned an unexpected response. Please try again."
	MessageNoImage        = "No background image was produced. Try rephrasing your idea."
	MessageProvider       = "The AI service failed to respond. Please try again."
	MessageComposition    = "Failed to compose the poster. Please try again."
	MessageTimeout        = "Poster generation took too long. Please try again."
)

// UserMessage maps a pipeline error onto the message shown next to the failed item.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, provider.ErrAuthentication):
		return MessageAuthentication
	case errors.Is(err, provider.ErrMalformedResponse):
		return MessageMalformed
	case errors.Is(err, provider.ErrNoImage):
		return MessageNoImage
	case errors.Is(err, overlay.ErrImageLoad),
		errors.Is(err, overlay.ErrSurfaceUnavailable),
		errors.Is(err, overlay.ErrContextUnavailable):
		return MessageComposition
	case errors.Is(err, context.DeadlineExceeded):
		return MessageTimeout
	default:
		return MessageProvider
	}
}
