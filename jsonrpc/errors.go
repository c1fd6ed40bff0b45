package jsonrpc

import (
	"errors"
	"fmt"

	"github.com/0xPolygon/relay-aggregator/aggregator"
)

// Error codes for aggregator rejections
const (
	ErrCodeUnauthorized       = -32001
	ErrCodeDuplicatePacket    = -32002
	ErrCodePacketNotFound     = -32003
	ErrCodeDuplicateSignature = -32004
	ErrCodeInvalidPacket      = -32005
)

type Error interface {
	Error() string
	ErrorCode() int
}

type invalidParamsError struct {
	err string
}

func (e *invalidParamsError) Error() string {
	return e.err
}

func (e *invalidParamsError) ErrorCode() int {
	return -32602
}

type internalError struct {
	err string
}

func (e *internalError) Error() string {
	return e.err
}

func (e *internalError) ErrorCode() int {
	return -32603
}

type invalidRequestError struct {
	err string
}

func (e *invalidRequestError) Error() string {
	return e.err
}

func (e *invalidRequestError) ErrorCode() int {
	return -32600
}

type subscriptionNotFoundError struct {
	err string
}

func (e *subscriptionNotFoundError) Error() string {
	return e.err
}

func (e *subscriptionNotFoundError) ErrorCode() int {
	return -32601
}

type methodNotFoundError struct {
	err string
}

func (e *methodNotFoundError) Error() string {
	return e.err
}

func (e *methodNotFoundError) ErrorCode() int {
	return -32601
}

// aggregatorError carries a rejection of the aggregator core
type aggregatorError struct {
	code int
	err  string
}

func (e *aggregatorError) Error() string {
	return e.err
}

func (e *aggregatorError) ErrorCode() int {
	return e.code
}

func NewMethodNotFoundError(method string) *methodNotFoundError {
	return &methodNotFoundError{fmt.Sprintf("the method %s does not exist/is not available", method)}
}

func NewInvalidRequestError(msg string) *invalidRequestError {
	return &invalidRequestError{msg}
}

func NewInvalidParamsError(msg string) *invalidParamsError {
	return &invalidParamsError{msg}
}

func NewInternalError(msg string) *internalError {
	return &internalError{msg}
}

func NewSubscriptionNotFoundError(method string) *subscriptionNotFoundError {
	return &subscriptionNotFoundError{fmt.Sprintf("subscribe method %s not found", method)}
}

// toRPCError maps an endpoint error to a jsonrpc error code
func toRPCError(err error) Error {
	var rpcErr Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	code := 0

	switch {
	case errors.Is(err, aggregator.ErrUnauthorized):
		code = ErrCodeUnauthorized
	case errors.Is(err, aggregator.ErrDuplicatePacket):
		code = ErrCodeDuplicatePacket
	case errors.Is(err, aggregator.ErrPacketNotFound):
		code = ErrCodePacketNotFound
	case errors.Is(err, aggregator.ErrDuplicateSignature):
		code = ErrCodeDuplicateSignature
	case errors.Is(err, aggregator.ErrInvalidPacket):
		code = ErrCodeInvalidPacket
	default:
		return NewInternalError(err.Error())
	}

	return &aggregatorError{code: code, err: err.Error()}
}
