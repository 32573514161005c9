package config

import "time"

type App struct {
	BindAddress     string        `json:"bind_address" mapstructure:"bind_address"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	ApmClient       *ApmClient    `json:"apm,omitempty" mapstructure:"apm"`
	Auth            *Auth         `json:"auth,omitempty" mapstructure:"auth"`
	Logging         *Logging      `json:"logging,omitempty" mapstructure:"logging"`
	Registry        Registry      `json:"registry" mapstructure:"registry"`
}

type Logging struct {
	Json  *bool   `json:"json,omitempty" mapstructure:"json"`
	File  *string `json:"file,omitempty" mapstructure:"file"`
	Level *string `json:"level,omitempty" mapstructure:"level"`
}

type ApmClient struct {
	Address     *string `json:"address,omitempty" mapstructure:"address"`
	SecretToken *string `json:"secret_token,omitempty" mapstructure:"secret_token"`
}

type Auth struct {
	BasicAuth []BasicAuthUser `json:"basic_auth" mapstructure:"basic_auth"`
}

type BasicAuthUser struct {
	Name     string `json:"name" mapstructure:"name"`
	Password string `json:"password" mapstructure:"password"`
}

type TopLevel struct {
	EsVersions EsVersions `json:"esversions" mapstructure:"esversions"`
}

type EsVersions struct {
	Server App `json:"server" mapstructure:"server"`
}

// Registry holds settings for generating the ECMAScript version table
type Registry struct {
	// Year to generate yearly editions up to; the current year if unset
	Year *int `json:"year,omitempty" mapstructure:"year"`
	// Years past Year to also generate editions for
	Horizon uint `json:"horizon" mapstructure:"horizon"`
	// Pins the reference clock to a date (YYYY-MM-DD or RFC3339) on startup
	Clock *string `json:"clock,omitempty" mapstructure:"clock"`
	// Cron expression for regenerating the table
	RefreshSchedule string `json:"refresh_schedule" mapstructure:"refresh_schedule"`
}
