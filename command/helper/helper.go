package helper

import (
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/0xPolygon/relay-aggregator/command"
	"github.com/0xPolygon/relay-aggregator/helper/common"
	"github.com/0xPolygon/relay-aggregator/jsonrpc"
)

type ClientCloseResult struct {
	Message string `json:"message"`
}

func (r *ClientCloseResult) GetOutput() string {
	return r.Message
}

// HandleSignals is a helper method for handling signals sent to the console
// Like stop, error, etc.
func HandleSignals(
	closeFn func(),
	outputter command.OutputFormatter,
) error {
	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-signalCh

	closeMessage := fmt.Sprintf("\n[SIGNAL] Caught signal: %v\n", sig)
	closeMessage += "Gracefully shutting down client...\n"

	outputter.SetCommandResult(
		&ClientCloseResult{
			Message: closeMessage,
		},
	)
	outputter.WriteOutput()

	// Call the relay server close callback
	gracefulCh := make(chan struct{})

	go func() {
		if closeFn != nil {
			closeFn()
		}

		close(gracefulCh)
	}()

	select {
	case <-signalCh:
		return errors.New("shutdown by signal channel")
	case <-time.After(5 * time.Second):
		return errors.New("shutdown by timeout")
	case <-gracefulCh:
		return nil
	}
}

// FormatList formats a list, using a specific blank value replacement
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

// RegisterJSONOutputFlag registers the --json output setting for all child commands
func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

// RegisterJSONRPCFlag registers the base JSON-RPC address flag for all child commands
func RegisterJSONRPCFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.JSONRPCFlag,
		command.DefaultJSONRPCAddress,
		"the JSON-RPC interface",
	)
}

// GetJSONRPCAddress reads the set JSON-RPC address from the command
func GetJSONRPCAddress(cmd *cobra.Command) string {
	return cmd.Flag(command.JSONRPCFlag).Value.String()
}

// GetRelayClient creates a client for the relay_ namespace of the node
// the command points at
func GetRelayClient(cmd *cobra.Command) (*jsonrpc.RelayClient, error) {
	client, err := jsonrpc.NewRelayClient(GetJSONRPCAddress(cmd))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", GetJSONRPCAddress(cmd), err)
	}

	return client, nil
}

// ParseSrcSn parses a packet serial number given in decimal or 0x hex
func ParseSrcSn(raw string) (*big.Int, error) {
	sn, err := common.ParseUint256orHex(&raw)
	if err != nil {
		return nil, fmt.Errorf("invalid source serial number: %w", err)
	}

	if sn.Sign() < 0 {
		return nil, fmt.Errorf("invalid source serial number: %s is negative", raw)
	}

	return sn, nil
}

// ResolveAddr resolves the passed in TCP address.
// An address without a host binds to the loopback interface
func ResolveAddr(address string) (*net.TCPAddr, error) {
	addr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse addr '%s': %w", address, err)
	}

	if addr.IP == nil {
		addr.IP = net.ParseIP("127.0.0.1")
	}

	return addr, nil
}

// PacketKeyParams are the flags addressing a packet by its
// (source network, contract address, source serial number) key
type PacketKeyParams struct {
	SrcNetwork      string
	ContractAddress string
	SrcSn           string
}

// RegisterFlags registers the packet key flags on the command
func (p *PacketKeyParams) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&p.SrcNetwork,
		command.SrcNetworkFlag,
		"",
		"the network the packet originates from",
	)

	cmd.Flags().StringVar(
		&p.ContractAddress,
		command.ContractFlag,
		"",
		"the contract that emitted the packet on the source network",
	)

	cmd.Flags().StringVar(
		&p.SrcSn,
		command.SrcSnFlag,
		"",
		"the source serial number of the packet, decimal or 0x prefixed hex",
	)
}

func (p *PacketKeyParams) RequiredFlags() []string {
	return []string{
		command.SrcNetworkFlag,
		command.ContractFlag,
		command.SrcSnFlag,
	}
}

// ParsedSrcSn returns the parsed source serial number
func (p *PacketKeyParams) ParsedSrcSn() (*big.Int, error) {
	return ParseSrcSn(p.SrcSn)
}
