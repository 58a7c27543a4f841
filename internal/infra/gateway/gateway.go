package gateway

import (
	"log/slog"

	"rentcar-backend/internal/pkg/config"
	"rentcar-backend/internal/usecase/shared"
)

const (
	DriverSimulated = "simulated"
	DriverProvider  = "provider"
)

// New picks the adapter named by cfg.Driver. Unknown drivers fall back to the simulator.
func New(cfg config.GatewayConfig) shared.PaymentGateway {
	switch cfg.Driver {
	case DriverProvider:
		slog.Info("Payment gateway: provider", "base_url", cfg.BaseURL)
		return NewProvider(cfg)
	case DriverSimulated:
		slog.Info("Payment gateway: simulated")
	default:
		slog.Warn("unknown payment gateway driver, using simulated", "driver", cfg.Driver)
	}
	return NewSimulated(cfg.SimulatedDelay)
}
