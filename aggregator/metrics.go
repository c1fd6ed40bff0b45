package aggregator

import (
	"errors"

	"github.com/armon/go-metrics"
)

const aggregatorMetrics = "aggregator"

func incrCounter(name string) {
	metrics.IncrCounter([]string{aggregatorMetrics, name}, 1)
}

func incrRejected(op string, err error) {
	metrics.IncrCounterWithLabels(
		[]string{aggregatorMetrics, "rejected"},
		1,
		[]metrics.Label{{Name: "op", Value: op}, {Name: "reason", Value: rejectReason(err)}},
	)
}

func setRelayersGauge(n int) {
	metrics.SetGauge([]string{aggregatorMetrics, "relayers"}, float32(n))
	metrics.SetGauge([]string{aggregatorMetrics, "threshold"}, float32(Threshold(n)))
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrDuplicatePacket):
		return "duplicate_packet"
	case errors.Is(err, ErrPacketNotFound):
		return "packet_not_found"
	case errors.Is(err, ErrDuplicateSignature):
		return "duplicate_signature"
	case errors.Is(err, ErrInvalidPacket):
		return "invalid_packet"
	default:
		return "internal"
	}
}
