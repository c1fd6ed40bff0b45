package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDispatcherHandle(f *testing.F) {
	d, _ := newTestDispatcher(f, 20)

	seeds := []string{
		`{"jsonrpc":"2.0","id":1,"method":"relay_getAdmin","params":[]}`,
		`{"jsonrpc":"2.0","id":1,"method":"relay_getRelayers"}`,
		`{"jsonrpc":"2.0","id":"a","method":"relay_registerPacket",` +
			`"params":["hxadmin","0x1.icon","cx01","0x1","0x2.bsc","0xdead"]}`,
		`{"jsonrpc":"2.0","id":2,"method":"relay_submitSignature",` +
			`"params":["hxa","0x1.icon","cx01","1","0x01"]}`,
		`{"jsonrpc":"2.0","id":3,"method":"relay_getSignatures","params":["0x1.icon","cx01",1]}`,
		`{"jsonrpc":"2.0","id":4,"method":"relay_getPacket","params":["0x1.icon","cx01","-1"]}`,
		`[{"jsonrpc":"2.0","id":1,"method":"relay_getThreshold"},{"jsonrpc":"2.0","id":2,"method":"relay_isConfirmed","params":["a","b","0x"]}]`,
		`{"jsonrpc":"2.0","id":5,"method":"relay_setAdmin","params":["hxadmin"]}`,
		`{"method":"relay_"}`,
		`[]`,
		`{`,
		``,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, body []byte) {
		resp, err := d.Handle(body)
		if err != nil {
			return
		}

		assert.True(t, json.Valid(resp), "invalid response %q for %q", resp, body)
	})
}

func FuzzPacketKeyParams(f *testing.F) {
	d, _ := newTestDispatcher(f, 0)

	f.Add("0x1.icon", "cx01", "0x1")
	f.Add("", "", "0")
	f.Add("a-b", "c", "12345678901234567890123456789012345678901234567890")
	f.Add("é", "\x00", "-0x1")

	f.Fuzz(func(t *testing.T, srcNetwork, contract, srcSn string) {
		params, err := json.Marshal([]string{srcNetwork, contract, srcSn})
		if err != nil {
			return
		}

		for _, method := range []string{"relay_getSignatures", "relay_isConfirmed", "relay_getPacket"} {
			_, rpcErr := d.handleReq(Request{Method: method, Params: params})
			if rpcErr == nil {
				continue
			}

			// nothing was registered, so lookups either parse and miss or reject the input
			code := rpcErr.ErrorCode()
			assert.Contains(t, []int{ErrCodePacketNotFound, ErrCodeInvalidPacket, -32602}, code, rpcErr.Error())
		}
	})
}
