package presetconfig

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
)

const shopPresets = `
presets:
  shop:
    description: Shop opening
    language: english
    idea: "Opening of {{ shop }}{% if town %} in {{ town }}{% endif %}"
    parameters:
      shop: Name of the shop
      town: Town
`

func TestLoad(t *testing.T) {
	c := qt.New(t)
	cfg, err := Load([]byte(shopPresets))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Names(), qt.DeepEquals, []string{"shop"})

	preset, err := cfg.Get("shop")
	c.Assert(err, qt.IsNil)
	c.Assert(preset.Language, qt.Equals, "english")
	c.Assert(preset.Description, qt.Equals, "Shop opening")

	idea, err := preset.RenderIdea(map[string]string{"shop": "Sai Sweets", "town": "Guntur", "ignored": "x"})
	c.Assert(err, qt.IsNil)
	c.Assert(idea, qt.Equals, "Opening of Sai Sweets in Guntur")

	idea, err = preset.RenderIdea(map[string]string{"shop": "Sai Sweets"})
	c.Assert(err, qt.IsNil)
	c.Assert(idea, qt.Equals, "Opening of Sai Sweets")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	c := qt.New(t)
	_, err := Load([]byte("presets:\n  x:\n    idea: hi\n    colour: red\n"))
	c.Assert(err, qt.IsNotNil)
}

func TestGetMissing(t *testing.T) {
	c := qt.New(t)
	cfg, err := Load([]byte(shopPresets))
	c.Assert(err, qt.IsNil)
	_, err = cfg.Get("nope")
	c.Assert(errors.Is(err, ErrPresetNotFound), qt.IsTrue)
}

func TestLoadDefault(t *testing.T) {
	c := qt.New(t)
	cfg, err := LoadDefault()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Names(), qt.Contains, "festival")

	for _, name := range cfg.Names() {
		preset, err := cfg.Get(name)
		c.Assert(err, qt.IsNil)
		idea, err := preset.RenderIdea(preset.Example)
		c.Assert(err, qt.IsNil, qt.Commentf("preset %s", name))
		c.Assert(idea, qt.Not(qt.Equals), "", qt.Commentf("preset %s", name))
	}
}

func TestLoadDir(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(dir, "a.yml"), []byte(shopPresets), 0o600), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("presets:\n  festival:\n    idea: overridden\n"), 0o600), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("presets: ["), 0o600), qt.IsNil)

	base, err := LoadDefault()
	c.Assert(err, qt.IsNil)
	cfg, err := LoadDir(base, dir)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Names(), qt.Contains, "shop")

	festival, err := cfg.Get("festival")
	c.Assert(err, qt.IsNil)
	idea, err := festival.RenderIdea(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(idea, qt.Equals, "overridden")

	// The base is not modified.
	_, err = base.Get("shop")
	c.Assert(errors.Is(err, ErrPresetNotFound), qt.IsTrue)
}
