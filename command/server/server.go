package server

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/command/helper"
	"github.com/0xPolygon/relay-aggregator/command/server/config"
	"github.com/0xPolygon/relay-aggregator/server"
)

func GetCommand() *cobra.Command {
	serverCmd := &cobra.Command{
		Use:     "server",
		Short:   "The default command that starts the Relay Aggregator node, opening its storage and JSON-RPC interface",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(serverCmd)

	return serverCmd
}

func setFlags(cmd *cobra.Command) {
	defaultConfig := config.DefaultConfig()

	cmd.Flags().StringVar(
		&params.configPath,
		configFlag,
		"",
		"the path to the CLI config. Supports .json, .hcl, .yaml and .yml",
	)

	cmd.Flags().StringVar(
		&params.rawConfig.LogLevel,
		command.LogLevelFlag,
		defaultConfig.LogLevel,
		fmt.Sprintf(
			"the log level for console output. Default: %s",
			defaultConfig.LogLevel,
		),
	)

	cmd.Flags().StringVar(
		&params.rawConfig.DataDir,
		dataDirFlag,
		defaultConfig.DataDir,
		fmt.Sprintf(
			"the data directory used for storing relay aggregator data. Default: %s",
			defaultConfig.DataDir,
		),
	)

	cmd.Flags().StringVar(
		&params.rawConfig.Storage,
		storageFlag,
		defaultConfig.Storage,
		fmt.Sprintf(
			"the storage backend (%s, %s or %s). Default: %s",
			server.LevelDBStorage,
			server.BoltDBStorage,
			server.MemoryStorage,
			defaultConfig.Storage,
		),
	)

	cmd.Flags().StringVar(
		&params.rawConfig.JSONRPCAddr,
		jsonRPCAddressFlag,
		defaultConfig.JSONRPCAddr,
		fmt.Sprintf(
			"the address and port for the JSON-RPC service (address:port). Default: %s",
			defaultConfig.JSONRPCAddr,
		),
	)

	cmd.Flags().StringVar(
		&params.rawConfig.Telemetry.PrometheusAddr,
		prometheusAddressFlag,
		"",
		"the address and port for the prometheus instrumentation service (address:port)",
	)

	cmd.Flags().StringVar(
		&params.rawConfig.LogFilePath,
		logFileLocationFlag,
		defaultConfig.LogFilePath,
		"write all logs to the file at specified location instead of writing them to console",
	)

	cmd.Flags().BoolVar(
		&params.rawConfig.JSONLogFormat,
		jsonLogFormatFlag,
		defaultConfig.JSONLogFormat,
		"write all logs in json format",
	)

	cmd.Flags().StringVar(
		&params.rawConfig.Admin,
		adminFlag,
		defaultConfig.Admin,
		"the leader relayer installed when the aggregator is initialized for the first time",
	)

	cmd.Flags().StringSliceVar(
		&params.rawConfig.Relayers,
		relayersFlag,
		defaultConfig.Relayers,
		"the relayer set installed when the aggregator is initialized for the first time",
	)

	cmd.Flags().BoolVar(
		&params.rawConfig.ConfirmOnce,
		confirmOnceFlag,
		defaultConfig.ConfirmOnce,
		"emit PacketConfirmed only on the submission that first reaches quorum",
	)

	cmd.Flags().IntVar(
		&params.rawConfig.PacketCacheSize,
		packetCacheSizeFlag,
		defaultConfig.PacketCacheSize,
		fmt.Sprintf(
			"the number of decoded packets kept in memory. Default: %d",
			defaultConfig.PacketCacheSize,
		),
	)

	cmd.Flags().Uint64Var(
		&params.rawConfig.JSONRPCBatchRequestLimit,
		batchRequestLimitFlag,
		defaultConfig.JSONRPCBatchRequestLimit,
		"max length to be considered when handling json-rpc batch requests, value of 0 disables it",
	)

	cmd.Flags().Uint64Var(
		&params.rawConfig.WebSocketReadLimit,
		webSocketReadLimitFlag,
		defaultConfig.WebSocketReadLimit,
		"maximum size in bytes for a message read from the peer by websocket",
	)

	cmd.Flags().StringSliceVar(
		&params.rawConfig.CorsAllowedOrigins,
		corsOriginFlag,
		defaultConfig.CorsAllowedOrigins,
		"the CORS header indicating whether any JSON-RPC response can be shared with the specified origin",
	)
}

func runPreRun(cmd *cobra.Command, _ []string) error {
	// Check if the config file has been specified
	if isConfigFileSpecified(cmd) {
		if err := params.initConfigFromFile(); err != nil {
			return err
		}
	}

	return params.initRawParams()
}

func isConfigFileSpecified(cmd *cobra.Command) bool {
	return cmd.Flags().Changed(configFlag)
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)

	if err := runServerLoop(params.generateConfig(), outputter); err != nil {
		outputter.SetError(err)
		outputter.WriteOutput()

		return
	}
}

func runServerLoop(
	config *server.Config,
	outputter command.OutputFormatter,
) error {
	serverInstance, err := server.NewServer(config)
	if err != nil {
		return err
	}

	return helper.HandleSignals(func() { _ = serverInstance.Close() }, outputter)
}
