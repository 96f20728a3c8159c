package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/classmeta/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/catalog"   //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/driver"    //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/classmeta/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			driver.NodeID,
			cache.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			detector.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	catalogLoader, err := graft.Dep[ports.CatalogLoader](ctx)
	if err != nil {
		return nil, err
	}
	driverBuilder, err := graft.Dep[ports.DriverBuilder](ctx)
	if err != nil {
		return nil, err
	}
	cacheOpener, err := graft.Dep[ports.CacheOpener](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	mode, err := graft.Dep[detector.OutputMode](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, catalogLoader, driverBuilder, cacheOpener, w, tracer, log).WithOutputMode(mode), nil
}
