package config

import (
	"time"

	"github.com/NordCoder/Postbox/internal/obs"
	pg "github.com/NordCoder/Postbox/internal/repository/postgres"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type Server struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      oc.Enable,
		Endpoint:    oc.OTLPEndpoint,
		ServiceName: oc.ServiceName,
		SampleRatio: oc.SampleRatio,
	}
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Auth carries the token signing secret and validity window. The secret is
// operator-supplied and must never appear in logs or responses.
type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

// Validation is the placeholder credential policy; see the register usecase.
type Validation struct {
	MinUsernameLen int `mapstructure:"min_username_len"`
	MinPasswordLen int `mapstructure:"min_password_len"`
}

type Config struct {
	App        App        `mapstructure:"app"`
	Server     Server     `mapstructure:"server"`
	DB         pg.Config  `mapstructure:"db"`
	OTEL       OTEL       `mapstructure:"otel"`
	Log        Log        `mapstructure:"log"`
	Auth       Auth       `mapstructure:"auth"`
	Validation Validation `mapstructure:"validation"`
}

func (c *Config) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{
		Level:   c.Log.Level,
		Pretty:  c.Log.Pretty,
		Service: c.App.Name,
		Env:     c.App.Env,
		Version: c.App.Version,
	}
}
