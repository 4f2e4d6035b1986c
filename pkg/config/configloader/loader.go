// Package configloader loads a configuration struct from a YAML file, a .env file
// and the process environment, in increasing order of priority.
package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

type options struct {
	configFile string
	envFile    string
}

// Option overrides a loader default.
type Option func(*options)

// WithConfigFile sets the YAML file to read. Defaults to config.yaml.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile sets the dotenv file to read. Defaults to .env.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// Load builds a T from config.yaml, then .env, then environment variables
// prefixed with <APP_NAME>_, and validates it. Keys use "." as delimiter;
// in env names "_" maps to ".", so INVENTORY_DATABASE_URL sets database.url.
func Load[T Validator](appName string, opts ...Option) (T, error) {
	var cfg T
	o := options{configFile: "config.yaml", envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(appName))

	// 1. YAML file
	if err := k.Load(file.Provider(o.configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", o.configFile, err)
		}
	}

	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}

	// 2. .env file, only keys carrying the prefix
	if envFileMap, err := godotenv.Read(o.envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. process environment, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
