package server

import (
	"net"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/types"
)

const DefaultJSONRPCPort int = 8545

// Config is used to parametrize the relay aggregator node
type Config struct {
	JSONRPC   *JSONRPC
	Telemetry *Telemetry

	DataDir         string
	Storage         StorageType
	PacketCacheSize int

	Admin       types.Address
	Relayers    []types.Address
	ConfirmOnce bool

	LogLevel hclog.Level

	JSONLogFormat bool

	LogFilePath string
}

// Telemetry holds the config details for metric services
type Telemetry struct {
	PrometheusAddr *net.TCPAddr
}

// JSONRPC holds the config details for the JSON-RPC server
type JSONRPC struct {
	JSONRPCAddr              *net.TCPAddr
	AccessControlAllowOrigin []string
	BatchLengthLimit         uint64
	WebSocketReadLimit       uint64
}
