package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfig holds the API process settings. Values come from an optional
// server.yaml (./ or ./config), then the environment.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Env            string   `mapstructure:"env"`
	StaticDir      string   `mapstructure:"static_dir"`
	ScenarioFile   string   `mapstructure:"scenario_file"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogLevel       string   `mapstructure:"log_level"`
}

func (c *ServerConfig) Production() bool {
	return c.Env == "production"
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func LoadServer() (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigName("server")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("port", 8080)
	v.SetDefault("env", "development")
	v.SetDefault("static_dir", "./web/dist")
	v.SetDefault("scenario_file", "")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")

	bindings := map[string]string{
		"port":            "API_PORT",
		"env":             "API_ENV",
		"static_dir":      "STATIC_DIR",
		"scenario_file":   "SCENARIO_FILE",
		"allowed_origins": "CORS_ORIGINS",
		"log_level":       "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading server config: %w", err)
		}
	}

	var c ServerConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error unmarshaling server config: %w", err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", c.Port)
	}
	return &c, nil
}
