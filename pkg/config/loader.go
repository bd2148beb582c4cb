package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables that map onto config keys
const EnvPrefix = "VARSUB_"

// Load builds the effective configuration. Later layers win:
// embedded defaults, user config, vault config, the vault .env file,
// VARSUB_* environment variables and finally overrides (usually flags).
func Load(p paths.Paths, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User and vault config files
	for _, path := range []string{p.UserConfigPath(), p.VaultConfigPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Vault .env file
	if envFile := p.EnvFilePath(); fileExists(envFile) {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", envFile).
				WithDetail("path", envFile)
		}
		if err := k.Load(confmap.Provider(envToKeys(values), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env values")
		}
		logger.Debug().Str("path", envFile).Int("count", len(values)).Msg("Loaded .env file")
	}

	// 4. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("variable_file", cfg.VariableFile).
		Bool("backup_enable", cfg.BackupEnable).
		Str("store", cfg.Store).
		Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps VARSUB_BACKUP_ENABLE to backup_enable
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func envToKeys(values map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		out[envKey(name)] = value
	}
	return out
}

// trimSliceHookFunc trims whitespace left by comma-separated env values
func trimSliceHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		trimmed := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				trimmed = append(trimmed, item)
			}
		}
		return trimmed, nil
	}
}

func postProcessConfig(cfg *Config) error {
	cfg.VariableFile = strings.TrimSpace(cfg.VariableFile)
	cfg.BackupFolder = strings.Trim(strings.TrimSpace(cfg.BackupFolder), "/")
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	for i, ext := range cfg.Extensions {
		cfg.Extensions[i] = strings.TrimPrefix(strings.ToLower(ext), ".")
	}
	return cfg.Validate()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
