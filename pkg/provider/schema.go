package provider

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

const contentSchema = `{
  "type": "object",
  "required": ["theme", "englishText", "teluguText"],
  "properties": {
    "theme":       {"type": "string", "minLength": 1},
    "englishText": {"type": "string"},
    "teluguText":  {"type": "string"}
  }
}`

//nolint:gochecknoglobals
var contentSchemaValidator = lo.Must(gojsonschema.NewSchema(gojsonschema.NewStringLoader(contentSchema)))

// stripCodeFence removes a surrounding markdown code fence, which models sometimes add even
// when asked for bare JSON.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// parseContent validates the raw model output against the content schema and decodes it.
func parseContent(raw string) (Content, error) {
	body := stripCodeFence(raw)
	if !json.Valid([]byte(body)) {
		return Content{}, errors.Wrap(ErrMalformedResponse, "parseContent: response is not JSON")
	}

	result, err := contentSchemaValidator.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return Content{}, errors.Wrapf(ErrMalformedResponse, "parseContent: %v", err)
	}
	if !result.Valid() {
		problems := lo.Map(result.Errors(), func(e gojsonschema.ResultError, _ int) string {
			return e.String()
		})
		return Content{}, errors.Wrapf(ErrMalformedResponse, "parseContent: %s", strings.Join(problems, "; "))
	}

	var content Content
	if err := json.Unmarshal([]byte(body), &content); err != nil {
		return Content{}, errors.Wrapf(ErrMalformedResponse, "parseContent: %v", err)
	}
	content.Theme = strings.TrimSpace(content.Theme)
	content.EnglishText = strings.TrimSpace(content.EnglishText)
	content.TeluguText = strings.TrimSpace(content.TeluguText)
	return content, nil
}
