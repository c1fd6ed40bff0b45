package server

import (
	"net"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/command/server/config"
	"github.com/0xPolygon/relay-aggregator/server"
	"github.com/0xPolygon/relay-aggregator/types"
)

const (
	configFlag             = "config"
	dataDirFlag            = "data-dir"
	storageFlag            = "storage"
	jsonRPCAddressFlag     = "jsonrpc"
	prometheusAddressFlag  = "prometheus"
	logFileLocationFlag    = "log-to"
	jsonLogFormatFlag      = "json-log-format"
	adminFlag              = "admin"
	relayersFlag           = "relayers"
	confirmOnceFlag        = "confirm-once"
	packetCacheSizeFlag    = "packet-cache-size"
	batchRequestLimitFlag  = "json-rpc-batch-request-limit"
	webSocketReadLimitFlag = "websocket-read-limit"
	corsOriginFlag         = "access-control-allow-origins"
)

var (
	params = &serverParams{
		rawConfig: &config.Config{
			Telemetry: &config.Telemetry{},
		},
	}
)

type serverParams struct {
	rawConfig  *config.Config
	configPath string

	jsonRPCAddress    *net.TCPAddr
	prometheusAddress *net.TCPAddr

	logFileLocation string
}

func (p *serverParams) isPrometheusAddressSet() bool {
	return p.rawConfig.Telemetry.PrometheusAddr != ""
}

func (p *serverParams) isLogFileLocationSet() bool {
	return p.rawConfig.LogFilePath != ""
}

func (p *serverParams) generateConfig() *server.Config {
	return &server.Config{
		JSONRPC: &server.JSONRPC{
			JSONRPCAddr:              p.jsonRPCAddress,
			AccessControlAllowOrigin: p.rawConfig.CorsAllowedOrigins,
			BatchLengthLimit:         p.rawConfig.JSONRPCBatchRequestLimit,
			WebSocketReadLimit:       p.rawConfig.WebSocketReadLimit,
		},
		Telemetry: &server.Telemetry{
			PrometheusAddr: p.prometheusAddress,
		},
		DataDir:         p.rawConfig.DataDir,
		Storage:         server.StorageType(p.rawConfig.Storage),
		PacketCacheSize: p.rawConfig.PacketCacheSize,
		Admin:           types.StringToAddress(p.rawConfig.Admin),
		Relayers:        types.StringsToAddresses(p.rawConfig.Relayers),
		ConfirmOnce:     p.rawConfig.ConfirmOnce,
		LogLevel:        hclog.LevelFromString(p.rawConfig.LogLevel),
		JSONLogFormat:   p.rawConfig.JSONLogFormat,
		LogFilePath:     p.logFileLocation,
	}
}
