// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modlock/internal/adapters/config"
	_ "go.trai.ch/modlock/internal/adapters/logger"
	_ "go.trai.ch/modlock/internal/adapters/metrics"
	_ "go.trai.ch/modlock/internal/adapters/modrinth"
	_ "go.trai.ch/modlock/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/modlock/internal/app"
	_ "go.trai.ch/modlock/internal/engine/fetcher"
	_ "go.trai.ch/modlock/internal/engine/resolver"
)
