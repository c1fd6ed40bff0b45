package aggregator

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicatePacket    = errors.New("packet already exists")
	ErrPacketNotFound     = errors.New("packet not registered")
	ErrDuplicateSignature = errors.New("signature already exists")
	ErrInvalidPacket      = errors.New("invalid packet")
	ErrInvalidAdmin       = errors.New("invalid admin")
)
