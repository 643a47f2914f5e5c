package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Each flag is looked up by its name as written on the command line
// ("log-level"), with underscores instead of hyphens ("log_level"), or as a
// nested mapping split at any hyphen:
//
//	log:
//	  level: debug
//	  pretty: false
//	define:
//	  - sq=x**2
//	  - cube=x**3
//
// Command-line flags override config file values. An empty file resolves
// nothing.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return config{}, nil
	}

	var m map[string]any

	err = yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, err
	}

	return config(m), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := lookup(r, strings.Split(flag.Name, "-"))
	if !ok {
		// Not found - return nil to let Kong use defaults
		return nil, nil
	}

	return native(value), nil
}

// lookup finds the value of the flag whose name is formed by parts.
// The longest key formed by joining a prefix of parts with a hyphen or an
// underscore is tried first. If its value is a mapping, the remaining parts
// are looked up in it.
func lookup(m map[string]any, parts []string) (any, bool) {
	for i := len(parts); i > 0; i-- {
		for _, sep := range []string{"-", "_"} {
			v, ok := m[strings.Join(parts[:i], sep)]
			if !ok {
				continue
			}

			if i == len(parts) {
				return v, true
			}

			if sub, ok := mapping(v); ok {
				if v, ok := lookup(sub, parts[i:]); ok {
					return v, true
				}
			}
		}
	}

	return nil, false
}

// mapping converts a decoded YAML mapping to a map keyed by string.
func mapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true

	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}

		return out, true

	case yaml.MapSlice:
		out := make(map[string]any, len(m))
		for _, item := range m {
			out[fmt.Sprint(item.Key)] = item.Value
		}

		return out, true
	}

	return nil, false
}

// native converts a decoded YAML value to a form Kong's mappers accept.
// Kong requires numbers as strings for parsing, and sequences are joined
// with Kong's default separator.
func native(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case []any:
		items := make([]string, len(n))
		for i, item := range n {
			items[i] = fmt.Sprint(native(item))
		}

		return strings.Join(items, ",")
	}

	return v
}
