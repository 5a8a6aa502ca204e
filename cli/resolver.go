package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/entap/expr/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML files holding flag
// values under the top-level key name:
//
//	config:
//	  log-level: debug
//	  log-format: json
//	  samples: 201
//
// Keys are flag names; underscores may be used in place of hyphens.
// Command-line flags override values from the file. A file that cannot be
// parsed is logged and ignored.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]map[string]any

		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if err != io.EOF {
				log.WarnContext(ctx, "ignoring configuration",
					slog.String("key", name),
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		cfg := make(config, len(doc[name]))
		for key, value := range doc[name] {
			cfg[key] = flagValue(value)
		}

		return cfg, nil
	}
}

// flagValue converts decoded YAML scalars to the forms kong decodes. Kong
// parses numbers from strings.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagValue(e)
		}

		return out
	default:
		return v
	}
}

// config is a [kong.Resolver] over flag values loaded from a file.
type config map[string]any

func (config) Validate(*kong.Application) error { return nil }

func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if v, ok := c[key]; ok {
			return v, nil
		}
	}

	return nil, nil
}
