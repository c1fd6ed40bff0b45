package command

import (
	"fmt"

	"github.com/0xPolygon/relay-aggregator/server"
)

const (
	JSONOutputFlag = "json"
	JSONRPCFlag    = "jsonrpc"
	LogLevelFlag   = "log-level"
)

var DefaultJSONRPCAddress = fmt.Sprintf("http://127.0.0.1:%d", server.DefaultJSONRPCPort)

// flags shared by the client commands addressing a packet
const (
	CallerFlag     = "caller"
	SrcNetworkFlag = "src-network"
	ContractFlag   = "contract"
	SrcSnFlag      = "sn"
)
