package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"
	"gopkg.in/yaml.v3"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/server"
)

// Config defines the server configuration params
type Config struct {
	DataDir                  string     `json:"data_dir" yaml:"data_dir" hcl:"data_dir"`
	Storage                  string     `json:"storage" yaml:"storage" hcl:"storage"`
	JSONRPCAddr              string     `json:"jsonrpc_addr" yaml:"jsonrpc_addr" hcl:"jsonrpc_addr"`
	Telemetry                *Telemetry `json:"telemetry" yaml:"telemetry" hcl:"telemetry"`
	LogLevel                 string     `json:"log_level" yaml:"log_level" hcl:"log_level"`
	LogFilePath              string     `json:"log_to" yaml:"log_to" hcl:"log_to"`
	JSONLogFormat            bool       `json:"json_log_format" yaml:"json_log_format" hcl:"json_log_format"`
	Admin                    string     `json:"admin" yaml:"admin" hcl:"admin"`
	Relayers                 []string   `json:"relayers" yaml:"relayers" hcl:"relayers"`
	ConfirmOnce              bool       `json:"confirm_once" yaml:"confirm_once" hcl:"confirm_once"`
	PacketCacheSize          int        `json:"packet_cache_size" yaml:"packet_cache_size" hcl:"packet_cache_size"`
	JSONRPCBatchRequestLimit uint64     `json:"json_rpc_batch_request_limit" yaml:"json_rpc_batch_request_limit" hcl:"json_rpc_batch_request_limit"`
	WebSocketReadLimit       uint64     `json:"web_socket_read_limit" yaml:"web_socket_read_limit" hcl:"web_socket_read_limit"`
	CorsAllowedOrigins       []string   `json:"cors_allowed_origins" yaml:"cors_allowed_origins" hcl:"cors_allowed_origins"`
}

// Telemetry holds the config details for metric services.
type Telemetry struct {
	PrometheusAddr string `json:"prometheus_addr" yaml:"prometheus_addr" hcl:"prometheus_addr"`
}

const (
	// DefaultJSONRPCBatchRequestLimit maximum length allowed for json_rpc batch requests
	DefaultJSONRPCBatchRequestLimit uint64 = 20

	// DefaultWebSocketReadLimit specifies max size in bytes for a message read from the peer by Gorrila websocket lib.
	// If a message exceeds the limit,
	// the connection sends a close message to the peer and returns ErrReadLimit to the application.
	DefaultWebSocketReadLimit uint64 = 8192

	// DefaultPacketCacheSize is the number of decoded packets kept in memory
	DefaultPacketCacheSize = storage.DefaultPacketCacheSize
)

var (
	errEmptyAdmin        = errors.New("admin identifier is empty")
	errEmptyRelayer      = errors.New("relayer identifier is empty")
	errDuplicateRelayer  = errors.New("relayer is listed more than once")
	errNegativeCacheSize = errors.New("packet cache size cannot be negative")
)

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:                  "./relay-data",
		Storage:                  string(server.LevelDBStorage),
		JSONRPCAddr:              fmt.Sprintf("0.0.0.0:%d", server.DefaultJSONRPCPort),
		Telemetry:                &Telemetry{},
		LogLevel:                 "INFO",
		LogFilePath:              "",
		Relayers:                 []string{},
		PacketCacheSize:          DefaultPacketCacheSize,
		JSONRPCBatchRequestLimit: DefaultJSONRPCBatchRequestLimit,
		WebSocketReadLimit:       DefaultWebSocketReadLimit,
		CorsAllowedOrigins:       []string{"*"},
	}
}

// ReadConfigFile reads the config file from the specified path, builds a Config object
// and returns it.
//
// Supported file types: .json, .hcl, .yaml, .yml
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error

	switch {
	case strings.HasSuffix(path, ".hcl"):
		unmarshalFunc = hcl.Unmarshal
	case strings.HasSuffix(path, ".json"):
		unmarshalFunc = json.Unmarshal
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		unmarshalFunc = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("suffix of %s is neither hcl, json, yaml nor yml", path)
	}

	config := DefaultConfig()

	if err := unmarshalFunc(data, config); err != nil {
		return nil, err
	}

	if config.Telemetry == nil {
		config.Telemetry = &Telemetry{}
	}

	return config, nil
}

// Validate checks the values which cannot be caught by the parsers.
// Every problem found is reported, not only the first one
func (c *Config) Validate() error {
	var result error

	if !server.StorageSupported(c.Storage) {
		result = multierror.Append(result, fmt.Errorf("storage backend '%s' is not supported", c.Storage))
	}

	if c.PacketCacheSize < 0 {
		result = multierror.Append(result, errNegativeCacheSize)
	}

	if strings.TrimSpace(c.Admin) == "" {
		result = multierror.Append(result, errEmptyAdmin)
	}

	seen := make(map[string]struct{}, len(c.Relayers))

	for i, relayer := range c.Relayers {
		relayer = strings.TrimSpace(relayer)
		if relayer == "" {
			result = multierror.Append(result, fmt.Errorf("relayer #%d: %w", i, errEmptyRelayer))

			continue
		}

		if _, ok := seen[relayer]; ok {
			result = multierror.Append(result, fmt.Errorf("relayer %s: %w", relayer, errDuplicateRelayer))

			continue
		}

		seen[relayer] = struct{}{}
	}

	return result
}
