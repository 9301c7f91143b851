// Package presetconfig loads poster presets: named idea templates that are completed from
// request parameters.
package presetconfig

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/flosch/pongo2/v6"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wrouesnel/posterserv/assets"
	"github.com/wrouesnel/posterserv/pkg/pongo2utils"
)

const defaultPresetsAsset = "presets/default.yml"

var (
	ErrPresetNotFound = errors.New("preset not found")
)

type PresetDefinition struct {
	Idea        pongo2utils.Template `mapstructure:"idea" help:"Idea template"`
	Language    string               `mapstructure:"language" help:"english, telugu or both"`
	Parameters  map[string]string    `mapstructure:"parameters" help:"Accepted parameters and their descriptions"`
	Example     map[string]string    `mapstructure:"example" help:"Prefilled parameters for an example poster"`
	Description string               `mapstructure:"description"`
}

// RenderIdea completes the idea template. Parameters the preset does not declare are ignored.
func (p *PresetDefinition) RenderIdea(params map[string]string) (string, error) {
	accepted := lo.PickByKeys(params, lo.Keys(p.Parameters))
	templateCtx := pongo2.Context(lo.MapValues(accepted, func(v string, _ string) interface{} {
		return v
	}))
	idea, err := p.Idea.Render(templateCtx)
	return idea, errors.Wrap(err, "RenderIdea")
}

type Config struct {
	Presets map[string]PresetDefinition `mapstructure:"presets"`
}

// Get returns the named preset.
func (c *Config) Get(name string) (PresetDefinition, error) {
	preset, ok := c.Presets[name]
	if !ok {
		return PresetDefinition{}, errors.Wrapf(ErrPresetNotFound, "Get: %s", name)
	}
	return preset, nil
}

// Names lists the preset names in sorted order.
func (c *Config) Names() []string {
	names := lo.Keys(c.Presets)
	sort.Strings(names)
	return names
}

// Decoder returns the decoder for config maps.
//
//nolint:exhaustruct
func Decoder(target interface{}, allowUnused bool) (*mapstructure.Decoder, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: !allowUnused,
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(mapstructure.TextUnmarshallerHookFunc()),
		Result:      target,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Load: BUG - decoder configuration rejected")
	}
	return decoder, nil
}

func loadConfigMap(configBytes []byte) (map[string]interface{}, error) {
	configMap := make(map[string]interface{})
	err := yaml.Unmarshal(configBytes, configMap)
	if err != nil {
		return configMap, errors.Wrapf(err, "loadConfigMap: yaml unmarshalling failed")
	}

	return configMap, nil
}

// Load loads a preset file from the supplied bytes. Unknown keys are rejected.
func Load(configData []byte) (*Config, error) {
	configMap, err := loadConfigMap(configData)
	if err != nil {
		return nil, errors.Wrap(err, "Load: failed")
	}

	// Do an initial decode to detect any unused key errors
	cfg := new(Config)
	decoder, err := Decoder(cfg, false)
	if err != nil {
		return nil, errors.Wrapf(err, "Load: config map decoder failed to initialize")
	}

	if err := decoder.Decode(configMap); err != nil {
		return nil, errors.Wrap(err, "Load: config map decoding failed")
	}

	cfg = new(Config)
	decoder, err = Decoder(cfg, true)
	if err != nil {
		return nil, errors.Wrapf(err, "Load: second-pass config map decoder failed to initialize")
	}

	if err := decoder.Decode(configMap); err != nil {
		return nil, errors.Wrap(err, "Load: second-pass config map decoding failed")
	}
	if cfg.Presets == nil {
		cfg.Presets = map[string]PresetDefinition{}
	}
	return cfg, nil
}

// LoadDefault loads the presets bundled with the binary.
func LoadDefault() (*Config, error) {
	data, err := assets.ReadFile(defaultPresetsAsset)
	if err != nil {
		return nil, errors.Wrap(err, "LoadDefault")
	}
	cfg, err := Load(data)
	return cfg, errors.Wrap(err, "LoadDefault")
}

// LoadDir loads every .yml and .yaml file in dirPath on top of base. Files which fail to
// load are logged and skipped; later files override presets of the same name.
func LoadDir(base *Config, dirPath string) (*Config, error) {
	logger := zap.L().With(zap.String("subsystem", "presetconfig"))

	finalConfig := Config{Presets: map[string]PresetDefinition{}}
	if base != nil {
		finalConfig.Presets = lo.Assign(finalConfig.Presets, base.Presets)
	}
	if dirPath == "" {
		return &finalConfig, nil
	}

	matches := lo.FlatMap([]string{"yml", "yaml"}, func(ext string, _ int) []string {
		extMatches, _ := filepath.Glob(filepath.Join(dirPath, fmt.Sprintf("*.%s", ext)))
		return extMatches
	})
	sort.Strings(matches)

	for _, configPath := range matches {
		logger.Debug("Loading presets from config file", zap.String("config_path", configPath))
		configBytes, err := ioutil.ReadFile(configPath)
		if err != nil {
			logger.Warn("Could not read config file", zap.String("config_path", configPath), zap.Error(err))
			continue
		}
		config, err := Load(configBytes)
		if err != nil {
			logger.Warn("Config parsing error", zap.String("config_path", configPath), zap.Error(err))
			continue
		}
		finalConfig.Presets = lo.Assign(finalConfig.Presets, config.Presets)
	}

	return &finalConfig, nil
}
