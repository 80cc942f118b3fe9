package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jwalitptl/booking-kit/internal/model"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Booking BookingConfig `mapstructure:"booking"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	// Backend selects the key-value medium: file, memory or cache.
	Backend string     `mapstructure:"backend"`
	Path    string     `mapstructure:"path"`
	Keys    KeysConfig `mapstructure:"keys"`
}

type KeysConfig struct {
	Appointments string `mapstructure:"appointments"`
	Users        string `mapstructure:"users"`
	Session      string `mapstructure:"session"`
	Token        string `mapstructure:"token"`
}

type BookingConfig struct {
	Slots   []string `mapstructure:"slots"`
	Doctors []string `mapstructure:"doctors"`
	Types   []string `mapstructure:"types"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BOOKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "booking.json")
	v.SetDefault("storage.keys.appointments", "appointments")
	v.SetDefault("storage.keys.users", "users")
	v.SetDefault("storage.keys.session", "user")
	v.SetDefault("storage.keys.token", "token")
	v.SetDefault("booking.slots", model.DefaultSlots())
	v.SetDefault("booking.doctors", []string{
		"Dr. Sarah Johnson",
		"Dr. Michael Chen",
		"Dr. Emily Williams",
		"Dr. James Wilson",
	})
	v.SetDefault("booking.types", []string{
		model.VisitTypeCheckup,
		model.VisitTypeConsultation,
		model.VisitTypeFollowup,
		model.VisitTypeVaccination,
	})
	v.SetDefault("log.level", "info")

	// A config file is optional; defaults plus env cover the common case.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
