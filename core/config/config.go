package config

import (
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/core/database"
	"github.com/omnivector-solutions/license-manager-sub000/core/logger"
	"github.com/omnivector-solutions/license-manager-sub000/core/slurm"
	"github.com/omnivector-solutions/license-manager-sub000/core/storage"
	"github.com/omnivector-solutions/license-manager-sub000/feature/licenses"
)

// AgentConfig holds the agent's own settings.
type AgentConfig struct {
	// ClusterName identifies this cluster in logs and history records.
	ClusterName string `mapstructure:"cluster_name" default:"default"`
	// IntervalSeconds is the reconciliation tick period for the daemon.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"60"`
	// Port is the HTTP port serving health and metrics.
	Port int `mapstructure:"port" default:"8080"`
	// ReservationDuration is the scheduler duration for the installed
	// reservation, renewed every tick.
	ReservationDuration string `mapstructure:"reservation_duration" default:"30:00"`
}

// Config holds all configuration for the agent.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Agent holds the reconciliation loop settings.
	Agent AgentConfig `mapstructure:"agent"`
	// Backend holds configuration for the license manager API.
	Backend backend.Config `mapstructure:"backend"`
	// Slurm holds configuration for the scheduler bridge.
	Slurm slurm.Config `mapstructure:"slurm"`
	// License holds the vendor CLI tool paths.
	License licenses.Config `mapstructure:"license"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the tick history store.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the raw output archive.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. BACKEND_BASE_URL -> backend.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
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

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
