package deeplink

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bipwallet/deeplink/foundation/minter/rawtx"
)

const (
	resultOK     = "ok"
	resultCached = "cached"
)

var resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "deeplink_resolve_total",
	Help: "The total number of resolved links by result",
}, []string{"result"})

// Reason maps a resolve error onto a short label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrMissingData):
		return "missing_data"
	case errors.Is(err, ErrUnhandled):
		return "unhandled"
	case errors.Is(err, rawtx.ErrMalformedBlob):
		return "malformed_blob"
	case errors.Is(err, rawtx.ErrShortList):
		return "short_list"
	case errors.Is(err, rawtx.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, rawtx.ErrInvalidGasCoin):
		return "invalid_gas_coin"
	case errors.Is(err, rawtx.ErrMalformedField):
		return "malformed_field"
	}

	return "error"
}
