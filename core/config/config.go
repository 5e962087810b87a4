package config

import (
	"fmt"
	"reflect"
	"strings"

	"timingcfg/core/database"
	"timingcfg/core/document"
	"timingcfg/core/logger"
	"timingcfg/core/release"
	"timingcfg/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Release describes the TOA release configs are reconciled against.
	Release release.Config `mapstructure:"release"`
	// Document holds settings for reading and writing timing configs.
	Document document.Config `mapstructure:"document"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for object storage hosting s3:// releases.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the rewrite history database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RELEASE_LOCATION -> release.location)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the tool cannot run with.
func (c *Config) Validate() error {
	if c.Release.Extension == "" {
		return fmt.Errorf("release.extension must not be empty")
	}
	if c.Document.Suffix == "" || c.Document.RoundtripSuffix == "" {
		return fmt.Errorf("document suffixes must not be empty")
	}
	if c.Document.Indent < 1 || c.Document.Indent > 9 {
		return fmt.Errorf("document.indent must be between 1 and 9, got %d", c.Document.Indent)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Database.Enabled {
		switch c.Database.Driver {
		case "sqlite", "mysql":
		default:
			return fmt.Errorf("database.driver must be sqlite or mysql, got %q", c.Database.Driver)
		}
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
