package config

import (
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

type Configuration struct {
	Server   Server
	Database Database
	Listing  Listing
}

type Server struct {
	HTTPPort   int    `default:"8000" validate:"gte=1,lte=65535"`
	ServerMode string `default:"dev" validate:"oneof=dev prod"`
}

type Database struct {
	Path string `default:"vuln-manager.db" validate:"required"`
}

type Listing struct {
	// MaxRowsPerPage caps how many rows one page may request, unless the
	// max_rows_per_page setting overrides it at runtime.
	MaxRowsPerPage int `default:"1000" validate:"gte=1"`
}

// NewConfigurationWithOptionsAndDefaults returns a configuration with all
// defaults applied.
func NewConfigurationWithOptionsAndDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}
