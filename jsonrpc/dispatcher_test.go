package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResponse struct {
	ID     interface{}     `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *ObjectError    `json:"error"`
}

func expectJSONResult(data []byte, v interface{}) error {
	var resp testResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return err
	}

	if resp.Error != nil {
		return resp.Error
	}

	return json.Unmarshal(resp.Result, v)
}

func expectErrorCode(t *testing.T, data []byte, code int) {
	t.Helper()

	var resp testResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.NotNil(t, resp.Error, "expected error in %s", string(data))
	assert.Equal(t, code, resp.Error.Code, resp.Error.Message)
}

func call(t *testing.T, d *Dispatcher, method string, params ...interface{}) []byte {
	t.Helper()

	raw, err := json.Marshal(params)
	require.NoError(t, err)

	req := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":%q,"params":%s}`, method, raw)

	resp, err := d.Handle([]byte(req))
	require.NoError(t, err)

	return resp
}

func TestDispatcher_PacketLifecycle(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 0)

	var id string
	require.NoError(t, expectJSONResult(
		call(t, d, "relay_registerPacket", testAdmin, "0x1.icon", "cx01", "0x0a", "0x2.eth", "0xabcd"),
		&id,
	))
	assert.Equal(t, "0x1.icon-cx01-10", id)

	// decimal sequence numbers address the same packet
	var ok bool
	require.NoError(t, expectJSONResult(
		call(t, d, "relay_submitSignature", testRelayB, "0x1.icon", "cx01", "10", "0x02"),
		&ok,
	))
	assert.True(t, ok)

	require.NoError(t, expectJSONResult(
		call(t, d, "relay_submitSignature", testRelayA, "0x1.icon", "cx01", "0xa", "0x01"),
		&ok,
	))

	var signatures []string
	require.NoError(t, expectJSONResult(call(t, d, "relay_getSignatures", "0x1.icon", "cx01", "0xa"), &signatures))
	assert.Equal(t, []string{"0x01", "0x02"}, signatures)

	var p packet
	require.NoError(t, expectJSONResult(call(t, d, "relay_getPacket", "0x1.icon", "cx01", "0xa"), &p))
	assert.Equal(t, "0x1.icon-cx01-10", p.ID)
	assert.Equal(t, "0x2.eth", p.DstNetwork)
	assert.Equal(t, argBytes{0xab, 0xcd}, p.Data)
	assert.Equal(t, int64(10), p.SrcSn.toBig().Int64())

	var confirmed bool
	require.NoError(t, expectJSONResult(call(t, d, "relay_isConfirmed", "0x1.icon", "cx01", "0xa"), &confirmed))
	assert.True(t, confirmed)
}

func TestDispatcher_AdminAndRelayers(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 0)

	var admin string
	require.NoError(t, expectJSONResult(call(t, d, "relay_getAdmin"), &admin))
	assert.Equal(t, string(testAdmin), admin)

	var ok bool
	require.NoError(t, expectJSONResult(call(t, d, "relay_setAdmin", testAdmin, testRelayA), &ok))

	require.NoError(t, expectJSONResult(call(t, d, "relay_getAdmin"), &admin))
	assert.Equal(t, string(testRelayA), admin)

	var relayers relayersResult
	require.NoError(t, expectJSONResult(call(t, d, "relay_getRelayers"), &relayers))
	assert.Len(t, relayers.Relayers, 3)
	assert.Equal(t, 1, relayers.Threshold)

	var threshold int
	require.NoError(t, expectJSONResult(call(t, d, "relay_getThreshold"), &threshold))
	assert.Equal(t, 1, threshold)
}

func TestDispatcher_ErrorCodes(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 0)

	call(t, d, "relay_registerPacket", testAdmin, "src", "cx", "0x1", "dst", "0x")
	call(t, d, "relay_submitSignature", testRelayA, "src", "cx", "0x1", "0x01")

	cases := []struct {
		name   string
		method string
		params []interface{}
		code   int
	}{
		{
			"unauthorized admin",
			"relay_setAdmin",
			[]interface{}{testOutside, testOutside},
			ErrCodeUnauthorized,
		},
		{
			"unauthorized relayer",
			"relay_submitSignature",
			[]interface{}{testOutside, "src", "cx", "0x1", "0x01"},
			ErrCodeUnauthorized,
		},
		{
			"duplicate packet",
			"relay_registerPacket",
			[]interface{}{testAdmin, "src", "cx", "1", "other", "0x01"},
			ErrCodeDuplicatePacket,
		},
		{
			"packet not found",
			"relay_submitSignature",
			[]interface{}{testRelayA, "src", "cx", "0x2", "0x01"},
			ErrCodePacketNotFound,
		},
		{
			"get unknown packet",
			"relay_getPacket",
			[]interface{}{"src", "cx", "0x2"},
			ErrCodePacketNotFound,
		},
		{
			"duplicate signature",
			"relay_submitSignature",
			[]interface{}{testRelayA, "src", "cx", "0x1", "0x02"},
			ErrCodeDuplicateSignature,
		},
		{
			"unknown method",
			"relay_unknown",
			nil,
			-32601,
		},
		{
			"unknown service",
			"eth_blockNumber",
			nil,
			-32601,
		},
		{
			"negative sequence number",
			"relay_getPacket",
			[]interface{}{"src", "cx", "-1"},
			-32602,
		},
		{
			"bad bytes",
			"relay_submitSignature",
			[]interface{}{testRelayA, "src", "cx", "0x1", "0xzz"},
			-32602,
		},
		{
			"missing params",
			"relay_getPacket",
			[]interface{}{"src", "cx"},
			-32602,
		},
		{
			"too many params",
			"relay_getAdmin",
			[]interface{}{"extra"},
			-32602,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			expectErrorCode(t, call(t, d, c.method, c.params...), c.code)
		})
	}
}

func TestDispatcher_Batch(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 2)

	resp, err := d.Handle([]byte(`[
		{"id": 1, "method": "relay_getAdmin"},
		{"id": 2, "method": "relay_getThreshold"}
	]`))
	require.NoError(t, err)

	var res []testResponse
	require.NoError(t, json.Unmarshal(resp, &res))
	require.Len(t, res, 2)
	assert.Nil(t, res[0].Error)
	assert.Equal(t, `"hxadmin"`, string(res[0].Result))
	assert.Equal(t, "1", string(res[1].Result))

	resp, err = d.Handle([]byte(`[
		{"id": 1, "method": "relay_getAdmin"},
		{"id": 2, "method": "relay_getAdmin"},
		{"id": 3, "method": "relay_getAdmin"}
	]`))
	require.NoError(t, err)
	expectErrorCode(t, resp, -32600)
}

func TestDispatcher_InvalidRequests(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 0)

	for _, body := range []string{"", "   ", "{", `{"id": 1}`, "[1, 2"} {
		resp, err := d.Handle([]byte(body))
		require.NoError(t, err)
		expectErrorCode(t, resp, -32600)
	}
}

func TestDispatcher_WebsocketSubscription(t *testing.T) {
	t.Parallel()

	d, subscriptions := newTestDispatcher(t, 0)

	mock := &mockWsConn{msgCh: make(chan []byte, 4)}

	resp, err := d.HandleWs([]byte(`{"id": 1, "method": "relay_subscribe", "params": ["packetConfirmed"]}`), mock)
	require.NoError(t, err)

	var id string
	require.NoError(t, expectJSONResult(resp, &id))
	assert.True(t, strings.HasPrefix(id, "0x"))
	assert.True(t, subscriptions.Exists(id))

	call(t, d, "relay_registerPacket", testAdmin, "src", "cx", "0x1", "dst", "0xff")
	call(t, d, "relay_submitSignature", testRelayA, "src", "cx", "0x1", "0x01")

	select {
	case msg := <-mock.msgCh:
		var n struct {
			Method string `json:"method"`
			Params struct {
				Subscription string          `json:"subscription"`
				Result       packetConfirmed `json:"result"`
			} `json:"params"`
		}

		require.NoError(t, json.Unmarshal(msg, &n))
		assert.Equal(t, subscriptionMethod, n.Method)
		assert.Equal(t, id, n.Params.Subscription)
		assert.Equal(t, "src-cx-1", n.Params.Result.ID)
		assert.Equal(t, "dst", n.Params.Result.DstNetwork)
		assert.Equal(t, argBytes{0xff}, n.Params.Result.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")
	}

	resp, err = d.HandleWs([]byte(fmt.Sprintf(`{"id": 2, "method": "relay_unsubscribe", "params": [%q]}`, id)), mock)
	require.NoError(t, err)

	var ok bool
	require.NoError(t, expectJSONResult(resp, &ok))
	assert.True(t, ok)
	assert.False(t, subscriptions.Exists(id))
}

func TestDispatcher_WebsocketInvalidSubscriptions(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 0)
	mock := &mockWsConn{msgCh: make(chan []byte, 1)}

	resp, err := d.HandleWs([]byte(`{"id": 1, "method": "relay_subscribe", "params": ["newHeads"]}`), mock)
	require.NoError(t, err)
	expectErrorCode(t, resp, -32601)

	resp, err = d.HandleWs([]byte(`{"id": 1, "method": "relay_subscribe", "params": []}`), mock)
	require.NoError(t, err)
	expectErrorCode(t, resp, -32602)

	resp, err = d.HandleWs([]byte(`{"id": 1.5, "method": "relay_getAdmin"}`), mock)
	require.NoError(t, err)
	expectErrorCode(t, resp, -32600)

	resp, err = d.HandleWs([]byte(`{"id": 1, "method": "relay_unsubscribe", "params": ["0x00"]}`), mock)
	require.NoError(t, err)

	var ok bool
	require.NoError(t, expectJSONResult(resp, &ok))
	assert.False(t, ok)
}

func TestDispatcher_WebsocketBatch(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t, 0)
	mock := &mockWsConn{msgCh: make(chan []byte, 1)}

	resp, err := d.HandleWs([]byte(`[
		{"id": 1, "method": "relay_getAdmin"},
		{"id": 2, "method": "relay_subscribe", "params": ["packetRegistered"]}
	]`), mock)
	require.NoError(t, err)

	var res []testResponse
	require.NoError(t, json.Unmarshal(resp, &res))
	require.Len(t, res, 2)
	assert.Nil(t, res[0].Error)
	assert.Nil(t, res[1].Error)
}

func TestDispatcher_RegisterServiceRejectsStruct(t *testing.T) {
	t.Parallel()

	d := &Dispatcher{logger: hclog.NewNullLogger()}

	assert.Error(t, d.registerService("relay", Relay{}))
	assert.Error(t, d.registerService("", &Relay{}))
}
