// Package fonts resolves the TrueType fonts used to paint poster text.
package fonts

import (
	"io/ioutil"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	ErrFontNotFound = errors.New("no font covering the sample text was found")
)

// Config selects the font files for each language block. An empty English path uses the bundled
// Go font; an empty Telugu path searches the system font directories for a Telugu font.
type Config struct {
	English string `help:"TrueType font file for English text (bundled Go font if empty)" default:""`
	Telugu  string `help:"TrueType font file for Telugu text (searched for in system font directories if empty)" default:""`
}

// teluguSample is a representative Telugu word used to check glyph coverage.
const teluguSample = "హ్యాపీ ఉగాది"

// teluguCandidates are searched for in order when no Telugu font is configured. These are the
// file names shipped by the common Linux, macOS and Windows Telugu font packages.
var teluguCandidates = []string{
	"NotoSansTelugu-Regular.ttf",
	"NotoSansTelugu.ttf",
	"NotoSerifTelugu-Regular.ttf",
	"Lohit-Telugu.ttf",
	"lohit_te.ttf",
	"Pothana2000.ttf",
	"Gidugu.ttf",
	"Ramabhadra.ttf",
	"Mallanna.ttf",
	"Gurajada.ttf",
	"Suranna.ttf",
	"Gautami.ttf",
	"Nirmala.ttf",
}

// findFont locates a font file by name in the platform font directories.
var findFont = findfont.Find

// Load parses the font at path, or the bundled Go Regular font when path is empty.
func Load(path string) (*truetype.Font, error) {
	if path == "" {
		f, err := truetype.Parse(goregular.TTF)
		return f, errors.Wrap(err, "fonts.Load: bundled font failed to parse")
	}

	fontBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fonts.Load: could not read %s", path)
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "fonts.Load: could not parse %s", path)
	}
	return f, nil
}

// Covers reports whether every rune of text has a glyph in f. Whitespace is ignored.
func Covers(f *truetype.Font, text string) bool {
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		if f.Index(r) == 0 {
			return false
		}
	}
	return true
}

// findCovering returns the first candidate font that can be found, parsed and renders sample.
func findCovering(candidates []string, sample string) (*truetype.Font, string, error) {
	logger := zap.L().With(zap.String("subsystem", "fonts"))
	for _, name := range candidates {
		path, err := findFont(name)
		if err != nil {
			continue
		}
		f, err := Load(path)
		if err != nil {
			logger.Debug("Skipping unreadable font", zap.String("path", path), zap.Error(err))
			continue
		}
		if !Covers(f, sample) {
			logger.Debug("Skipping font without coverage", zap.String("path", path))
			continue
		}
		return f, path, nil
	}
	return nil, "", errors.Wrapf(ErrFontNotFound, "searched %d candidates", len(candidates))
}

// FindTelugu searches the system font directories for an installed Telugu font.
func FindTelugu() (*truetype.Font, string, error) {
	f, path, err := findCovering(teluguCandidates, teluguSample)
	return f, path, errors.Wrap(err, "FindTelugu")
}

// LoadConfig loads both language fonts. Without a configured Telugu font an installed one is
// used, falling back to the bundled font with a warning when none is found.
func LoadConfig(config Config) (english *truetype.Font, telugu *truetype.Font, err error) {
	logger := zap.L().With(zap.String("subsystem", "fonts"))

	english, err = Load(config.English)
	if err != nil {
		return nil, nil, errors.Wrap(err, "LoadConfig: english font")
	}

	if config.Telugu == "" {
		var path string
		telugu, path, err = FindTelugu()
		if err == nil {
			logger.Info("Using installed Telugu font", zap.String("telugu_font", path))
			return english, telugu, nil
		}
		logger.Warn("No Telugu font installed, Telugu text will render as boxes. Install Noto Sans Telugu or set --fonts.telugu",
			zap.Error(err))
		telugu, err = Load("")
		return english, telugu, errors.Wrap(err, "LoadConfig: telugu font")
	}

	telugu, err = Load(config.Telugu)
	if err != nil {
		return nil, nil, errors.Wrap(err, "LoadConfig: telugu font")
	}
	if !Covers(telugu, teluguSample) {
		logger.Warn("Telugu font has no Telugu glyphs, Telugu text will render as boxes",
			zap.String("telugu_font", config.Telugu))
	}
	return english, telugu, nil
}
