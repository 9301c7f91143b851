package fonts

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

// stubFindFont serves font lookups from paths, failing for any other name.
func stubFindFont(c *qt.C, paths map[string]string) *[]string {
	searched := []string{}
	original := findFont
	findFont = func(name string) (string, error) {
		searched = append(searched, name)
		if path, ok := paths[name]; ok {
			return path, nil
		}
		return "", errors.Errorf("%s not found", name)
	}
	c.Cleanup(func() { findFont = original })
	return &searched
}

func writeFile(c *qt.C, name string, data []byte) string {
	path := filepath.Join(c.TempDir(), name)
	c.Assert(os.WriteFile(path, data, 0o600), qt.IsNil)
	return path
}

func TestLoadBundled(t *testing.T) {
	c := qt.New(t)
	f, err := Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Not(qt.IsNil))
	c.Assert(Covers(f, "Happy Ugadi to All!"), qt.IsTrue)
	c.Assert(Covers(f, teluguSample), qt.IsFalse)
}

func TestLoadMissingFile(t *testing.T) {
	c := qt.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.ttf"))
	c.Assert(err, qt.ErrorMatches, `fonts.Load: could not read .*`)
}

func TestFindCoveringSkipsUnusableCandidates(t *testing.T) {
	c := qt.New(t)
	searched := stubFindFont(c, map[string]string{
		"broken.ttf":  writeFile(c, "broken.ttf", []byte("not a font")),
		"regular.ttf": writeFile(c, "regular.ttf", goregular.TTF),
	})

	f, path, err := findCovering([]string{"missing.ttf", "broken.ttf", "regular.ttf"}, "Happy Ugadi")
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Not(qt.IsNil))
	c.Assert(filepath.Base(path), qt.Equals, "regular.ttf")
	c.Assert(*searched, qt.DeepEquals, []string{"missing.ttf", "broken.ttf", "regular.ttf"})
}

func TestFindTeluguRejectsFontsWithoutTelugu(t *testing.T) {
	c := qt.New(t)
	latin := writeFile(c, "latin.ttf", goregular.TTF)
	paths := map[string]string{}
	for _, name := range teluguCandidates {
		paths[name] = latin
	}
	stubFindFont(c, paths)

	_, _, err := FindTelugu()
	c.Assert(errors.Is(err, ErrFontNotFound), qt.IsTrue)
}

func TestLoadConfigFallsBackWithoutInstalledTelugu(t *testing.T) {
	c := qt.New(t)
	searched := stubFindFont(c, nil)

	english, telugu, err := LoadConfig(Config{})
	c.Assert(err, qt.IsNil)
	c.Assert(english, qt.Not(qt.IsNil))
	c.Assert(telugu, qt.Not(qt.IsNil))
	c.Assert(*searched, qt.DeepEquals, teluguCandidates)
}

func TestLoadConfigOverrideSkipsSearch(t *testing.T) {
	c := qt.New(t)
	searched := stubFindFont(c, nil)
	path := writeFile(c, "override.ttf", goregular.TTF)

	_, telugu, err := LoadConfig(Config{Telugu: path})
	c.Assert(err, qt.IsNil)
	c.Assert(telugu, qt.Not(qt.IsNil))
	c.Assert(*searched, qt.HasLen, 0)
}
