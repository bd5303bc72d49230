package dispatcher

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/yertz/yapr/internal/dispatcher"

// meter is looked up per dispatcher so a provider installed after package
// init is still picked up.
func meter() metric.Meter {
	return otel.GetMeterProvider().Meter(instrumentationName)
}
