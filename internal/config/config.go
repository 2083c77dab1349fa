// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Logging    LoggingConfig     `mapstructure:"logging"`
	Printer    PrinterConfig     `mapstructure:"printer"`
	Transports []TransportConfig `mapstructure:"transports"`
	Discovery  DiscoveryConfig   `mapstructure:"discovery"`
	App        AppConfig         `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// PrinterConfig describes the printer the service drives
type PrinterConfig struct {
	Pins     int    `mapstructure:"pins"`
	CodePage string `mapstructure:"code_page"`
	Draft    bool   `mapstructure:"draft"`
	// number of finished jobs kept for the jobs API
	JobHistory int `mapstructure:"job_history"`
}

// TransportConfig describes one destination a finished job is sent to
type TransportConfig struct {
	Name      string        `mapstructure:"name" json:"name"`
	Type      string        `mapstructure:"type" json:"type"`
	VendorID  string        `mapstructure:"vendor_id" json:"vendor_id,omitempty"`
	ProductID string        `mapstructure:"product_id" json:"product_id,omitempty"`
	Port      string        `mapstructure:"port" json:"port,omitempty"`
	BaudRate  int           `mapstructure:"baud_rate" json:"baud_rate,omitempty"`
	DataBits  int           `mapstructure:"data_bits" json:"data_bits,omitempty"`
	StopBits  int           `mapstructure:"stop_bits" json:"stop_bits,omitempty"`
	Parity    string        `mapstructure:"parity" json:"parity,omitempty"`
	Host      string        `mapstructure:"host" json:"host,omitempty"`
	TCPPort   int           `mapstructure:"tcp_port" json:"tcp_port,omitempty"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
}

// DiscoveryConfig controls printer discovery scans
type DiscoveryConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	TCPHosts []string      `mapstructure:"tcp_hosts"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// Transport types
const (
	TransportUSB    = "usb"
	TransportSerial = "serial"
	TransportTCP    = "tcp"
	TransportDebug  = "debug"
)

// Load loads configuration from file and environment variables. A missing
// config file is not an error; defaults and ESCP_* variables apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable support
	v.SetEnvPrefix("ESCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	applyTransportDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8085")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// Printer defaults
	v.SetDefault("printer.pins", 9)
	v.SetDefault("printer.code_page", "cp437")
	v.SetDefault("printer.draft", false)
	v.SetDefault("printer.job_history", 200)

	// Discovery defaults
	v.SetDefault("discovery.timeout", "10s")

	// App defaults
	v.SetDefault("app.name", "escp-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

// applyTransportDefaults fills per-type defaults viper cannot express for list entries
func applyTransportDefaults(config *Config) {
	for i := range config.Transports {
		t := &config.Transports[i]
		t.Type = strings.ToLower(t.Type)
		if t.Name == "" {
			t.Name = fmt.Sprintf("%s-%d", t.Type, i)
		}
		if t.Timeout == 0 {
			t.Timeout = 5 * time.Second
		}
		switch t.Type {
		case TransportSerial:
			if t.BaudRate == 0 {
				t.BaudRate = 9600
			}
			if t.DataBits == 0 {
				t.DataBits = 8
			}
			if t.StopBits == 0 {
				t.StopBits = 1
			}
			if t.Parity == "" {
				t.Parity = "none"
			}
		case TransportTCP:
			if t.TCPPort == 0 {
				t.TCPPort = 9100
			}
		}
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	switch config.Printer.Pins {
	case 9, 24, 48:
	default:
		return fmt.Errorf("printer.pins must be one of 9, 24, 48, got %d", config.Printer.Pins)
	}

	validEnvs := []string{"development", "staging", "production", "test"}
	if !contains(validEnvs, config.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	for _, t := range config.Transports {
		if err := validateTransport(t); err != nil {
			return fmt.Errorf("transport %s: %w", t.Name, err)
		}
	}

	return nil
}

func validateTransport(t TransportConfig) error {
	switch t.Type {
	case TransportUSB:
		if t.VendorID == "" || t.ProductID == "" {
			return fmt.Errorf("vendor_id and product_id are required")
		}
	case TransportSerial:
		if t.Port == "" {
			return fmt.Errorf("port is required")
		}
	case TransportTCP:
		if t.Host == "" {
			return fmt.Errorf("host is required")
		}
	case TransportDebug:
	default:
		return fmt.Errorf("unsupported transport type %q", t.Type)
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDebugEnabled checks if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.App.Environment == "development"
}
