// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/classmeta/internal/adapters/cache"
	_ "go.trai.ch/classmeta/internal/adapters/catalog"
	_ "go.trai.ch/classmeta/internal/adapters/config"
	_ "go.trai.ch/classmeta/internal/adapters/detector"
	_ "go.trai.ch/classmeta/internal/adapters/driver"
	_ "go.trai.ch/classmeta/internal/adapters/logger"
	_ "go.trai.ch/classmeta/internal/adapters/telemetry"
	_ "go.trai.ch/classmeta/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/classmeta/internal/app"
)
