// Package config holds the node configuration loaded through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/VanDung-dev/QNetX-Engine/network"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

// EnvPrefix prefixes environment overrides, e.g. QNETX_NODE_ID.
const EnvPrefix = "QNETX"

// validate is a shared validator instance
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// A dimension travels in the "a,b\n" handshake line, so it may not
	// contain the field separator or a line break.
	_ = v.RegisterValidation("dimension", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), ",\r\n")
	})
	return v
}

// Config is the root configuration of a node.
type Config struct {
	Node    NodeConfig    `mapstructure:"node" yaml:"node"`
	Routing RoutingConfig `mapstructure:"routing" yaml:"routing"`
	Mesh    MeshConfig    `mapstructure:"mesh" yaml:"mesh"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Admin   AdminConfig   `mapstructure:"admin" yaml:"admin"`
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
}

// NodeConfig identifies the node and its transport.
type NodeConfig struct {
	ID               string          `mapstructure:"id" yaml:"id" validate:"required"`
	Transport        TransportConfig `mapstructure:"transport" yaml:"transport"`
	HandshakeAddress string          `mapstructure:"handshake_address" yaml:"handshake_address" validate:"omitempty,hostname_port"`
	Peers            []PeerConfig    `mapstructure:"peers" yaml:"peers" validate:"dive"`
}

// TransportConfig selects and binds the packet transport.
type TransportConfig struct {
	Kind     string `mapstructure:"kind" yaml:"kind" validate:"oneof=zmq nng"`
	Host     string `mapstructure:"host" yaml:"host" validate:"required"`
	Port     int    `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	Compress bool   `mapstructure:"compress" yaml:"compress"`
}

// PeerConfig is a statically known peer.
type PeerConfig struct {
	ID      string `mapstructure:"id" yaml:"id" validate:"required"`
	Address string `mapstructure:"address" yaml:"address" validate:"required"`
}

// RoutingConfig describes the topology and routing policy.
type RoutingConfig struct {
	KPaths         int          `mapstructure:"k_paths" yaml:"k_paths" validate:"min=1"`
	EnableTeleport bool         `mapstructure:"enable_teleport" yaml:"enable_teleport"`
	Edges          []EdgeConfig `mapstructure:"edges" yaml:"edges" validate:"dive"`
}

// EdgeConfig is one undirected topology link.
type EdgeConfig struct {
	From string `mapstructure:"from" yaml:"from" validate:"required"`
	To   string `mapstructure:"to" yaml:"to" validate:"required"`
}

// MeshConfig configures the channel mesh and its maintenance loops.
type MeshConfig struct {
	Dimensions              []string      `mapstructure:"dimensions" yaml:"dimensions" validate:"dive,required,dimension"`
	AnomalyThreshold        *float64      `mapstructure:"anomaly_threshold" yaml:"anomaly_threshold,omitempty" validate:"omitempty,gte=0"`
	HandshakeTimeout        time.Duration `mapstructure:"handshake_timeout" yaml:"handshake_timeout" validate:"gte=0"`
	HandshakeWorkers        int           `mapstructure:"handshake_workers" yaml:"handshake_workers" validate:"min=1"`
	ZeroPropagationInterval time.Duration `mapstructure:"zero_propagation_interval" yaml:"zero_propagation_interval" validate:"gte=0"`
	EnableAnomaly           bool          `mapstructure:"enable_anomaly" yaml:"enable_anomaly"`
	AnomalyInterval         time.Duration `mapstructure:"anomaly_interval" yaml:"anomaly_interval" validate:"gte=0"`
}

// MetricsConfig configures the HTTP admin surface, including /metrics.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Address   string `mapstructure:"address" yaml:"address" validate:"required_if=Enabled true"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// AdminConfig configures the gRPC admin service. An empty GRPCAddress
// disables it.
type AdminConfig struct {
	GRPCAddress string `mapstructure:"grpc_address" yaml:"grpc_address"`
	AuthToken   string `mapstructure:"auth_token" yaml:"auth_token"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format      string `mapstructure:"format" json:"format" yaml:"format" validate:"omitempty,oneof=json console"`
	AddSource   bool   `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("node.id", "node-1")
	v.SetDefault("node.transport.kind", network.KindZMQ)
	v.SetDefault("node.transport.host", "127.0.0.1")
	v.SetDefault("node.transport.port", 5555)
	v.SetDefault("node.transport.compress", true)
	v.SetDefault("node.handshake_address", "127.0.0.1:7000")

	v.SetDefault("routing.k_paths", qnet.DefaultConfig().KPaths)
	v.SetDefault("routing.enable_teleport", false)

	v.SetDefault("mesh.dimensions", []string{})
	v.SetDefault("mesh.handshake_timeout", 10*time.Second)
	v.SetDefault("mesh.handshake_workers", qnetx.DefaultConfig().HandshakeWorkers)
	v.SetDefault("mesh.zero_propagation_interval", 30*time.Second)
	v.SetDefault("mesh.enable_anomaly", true)
	v.SetDefault("mesh.anomaly_interval", time.Minute)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.address", "127.0.0.1:9100")
	v.SetDefault("metrics.namespace", "qnetx")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.service_name", "qnetx")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
}

// NewViper returns a viper instance with defaults and QNETX_ environment
// overrides. configFile may be empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration produced by SetDefaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not unmarshal: %v", err))
	}
	return &cfg
}

// Validate checks struct rules and cross-field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	seen := make(map[string]bool, len(c.Mesh.Dimensions))
	for _, dim := range c.Mesh.Dimensions {
		if seen[dim] {
			return fmt.Errorf("Mesh.Dimensions: duplicate dimension %q", dim)
		}
		seen[dim] = true
	}
	return nil
}

// formatValidationError flattens validator errors into one readable error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the root "Config." prefix.
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s=%s'", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s'", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// WriteFile writes c as YAML to path.
func WriteFile(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// ToNetwork converts the node section to a network.Config.
func (c *Config) ToNetwork() network.Config {
	return network.Config{
		NodeID:   c.Node.ID,
		Kind:     c.Node.Transport.Kind,
		Host:     c.Node.Transport.Host,
		Port:     c.Node.Transport.Port,
		Compress: c.Node.Transport.Compress,
	}
}

// ToRouting converts the routing section to a qnet.Config.
func (c *Config) ToRouting() qnet.Config {
	return qnet.Config{
		KPaths:         c.Routing.KPaths,
		EnableTeleport: c.Routing.EnableTeleport,
	}
}

// ToMesh converts the mesh section to a qnetx.Config.
func (c *Config) ToMesh() qnetx.Config {
	dims := make([]qnetx.Dimension, len(c.Mesh.Dimensions))
	for i, d := range c.Mesh.Dimensions {
		dims[i] = qnetx.Dimension(d)
	}
	return qnetx.Config{
		Dimensions:       dims,
		AnomalyThreshold: c.Mesh.AnomalyThreshold,
		HandshakeTimeout: c.Mesh.HandshakeTimeout,
		HandshakeWorkers: c.Mesh.HandshakeWorkers,
	}
}
