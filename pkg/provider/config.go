package provider

import (
	"time"

	"github.com/wrouesnel/posterserv/pkg/pongo2utils"
)

// Config configures the Gemini and Imagen backed providers.
type Config struct {
	APIKey        string               `help:"Gemini API key" env:"GEMINI_API_KEY"`
	Endpoint      string               `help:"Generative Language REST endpoint" default:"https://generativelanguage.googleapis.com/v1beta"`
	ContentModel  string               `help:"Model used to write poster copy" default:"gemini-2.0-flash"`
	TitleModel    string               `help:"Model used to summarize titles" default:"gemini-2.0-flash"`
	ImageModel    string               `help:"Model used to generate backgrounds" default:"imagen-3.0-generate-002"`
	AspectRatio   string               `help:"Aspect ratio of generated backgrounds" default:"16:9"`
	Timeout       time.Duration        `help:"Timeout for image generation requests" default:"120s"`
	ContentPrompt pongo2utils.Template `help:"Override the poster copy prompt template (pongo2)"`
	ImagePrompt   pongo2utils.Template `help:"Override the background image prompt template (pongo2)"`
	TitlePrompt   pongo2utils.Template `help:"Override the title prompt template (pongo2)"`
}
