package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/modrinth"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/modlock/internal/engine/fetcher"
	"go.trai.ch/modlock/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds everything the command layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
	Tracer *telemetry.OTelTracer
}

// Shutdown flushes the tracer.
func (c *Components) Shutdown(ctx context.Context) error {
	if c.Tracer == nil {
		return nil
	}
	return c.Tracer.Shutdown(ctx)
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.StoreNodeID,
			modrinth.NodeID,
			resolver.NodeID,
			fetcher.NodeID,
			logger.NodeID,
			metrics.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}

	client, err := graft.Dep[*modrinth.Client](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	fetch, err := graft.Dep[*fetcher.Fetcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, store, client, res, fetch, log, m), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    a,
		Logger: log,
		Tracer: tracer,
	}, nil
}
