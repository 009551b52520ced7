// Package conf layers configuration from defaults, an optional JSON
// file, an optional dotenv file, and prefixed environment variables,
// then unmarshals the result into a typed struct.
package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// DefaultConfig holds baseline values keyed by dotted config path.
type DefaultConfig map[string]any

// ParseOptions controls the configuration sources and their layering.
// Later sources override earlier ones: Defaults, then FileName, then
// EnvFile, then process environment.
type ParseOptions struct {
	Defaults  DefaultConfig
	FileName  string
	EnvFile   string
	EnvPrefix string
	Log       *zap.Logger
}

// Parse loads configuration per opt into a fresh C. Missing files are
// skipped; other source errors are logged and the source ignored.
func Parse[C any](opt ParseOptions) (C, error) {
	var out C

	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}

	k := koanf.New(".")

	if len(opt.Defaults) > 0 {
		//nolint:errcheck // confmap load of a literal map cannot fail
		k.Load(confmap.Provider(opt.Defaults, "."), nil)
	}

	if opt.FileName != "" {
		if err := k.Load(file.Provider(opt.FileName), json.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Error("load config file", zap.String("file", opt.FileName), zap.Error(err))
		}
	}

	if opt.EnvFile != "" {
		parser := dotenv.ParserEnv(opt.EnvPrefix, ".", func(s string) string {
			return transformEnv(s, opt.EnvPrefix)
		})
		if err := k.Load(file.Provider(opt.EnvFile), parser); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Error("load env file", zap.String("file", opt.EnvFile), zap.Error(err))
		}
	}

	if opt.EnvPrefix != "" {
		if err := k.Load(env.Provider(opt.EnvPrefix, ".", func(s string) string {
			return transformEnv(s, opt.EnvPrefix)
		}), nil); err != nil {
			log.Error("load environment", zap.String("prefix", opt.EnvPrefix), zap.Error(err))
		}
	}

	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		return out, fmt.Errorf("unmarshal config: %w", err)
	}
	return out, nil
}

// transformEnv maps SALVE_LOG__LEVEL to log.level: strip the prefix,
// lowercase, and treat a double underscore as a nesting separator.
func transformEnv(s, prefix string) string {
	s = strings.ToLower(strings.TrimPrefix(s, prefix))
	return strings.ReplaceAll(s, "__", ".")
}
