// package kongutil provides helper functions for working with the kong parser
package kongutil

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedConfigFormat = errors.New("Unsupported config format")
)

// Hybrid returns a Resolver that retrieves values from a JSON, YAML or TOML document.
//
// A flag such as "provider.api-key" is looked up first as a flat key and then as a path through
// nested tables. Hyphens and underscores are interchangeable in every key.
func Hybrid(r io.Reader) (kong.Resolver, error) {
	values, err := decodeConfig(r)
	if err != nil {
		return nil, errors.Wrap(err, "Hybrid: configuration could not be decoded into any supported format")
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		return lookup(values, flag.Name), nil
	}

	return f, nil
}

// lookup resolves a dotted flag name against values. Partial paths which end on a table
// resolve to nothing.
func lookup(values map[string]interface{}, name string) interface{} {
	if raw, ok := lookupKey(values, name); ok && !isTable(raw) {
		return raw
	}

	var raw interface{} = values
	for _, part := range strings.Split(name, ".") {
		table, ok := raw.(map[string]interface{})
		if !ok {
			return nil
		}
		if raw, ok = lookupKey(table, part); !ok {
			return nil
		}
	}

	if isTable(raw) {
		return nil
	}
	return raw
}

func isTable(raw interface{}) bool {
	_, ok := raw.(map[string]interface{})
	return ok
}

func lookupKey(table map[string]interface{}, key string) (interface{}, bool) {
	for _, candidate := range []string{key, strings.ReplaceAll(key, "-", "_"), strings.ReplaceAll(key, "_", "-")} {
		if raw, ok := table[candidate]; ok {
			return raw, true
		}
	}
	return nil, false
}

func decodeConfig(r io.Reader) (map[string]interface{}, error) {
	configBytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "decodeConfig: failed to read all config bytes")
	}

	decoders := []func([]byte, interface{}) error{json.Unmarshal, yaml.Unmarshal, toml.Unmarshal}
	for _, decode := range decoders {
		values := map[string]interface{}{}
		if err := decode(configBytes, &values); err == nil {
			return values, nil
		}
	}

	return nil, ErrUnsupportedConfigFormat
}
