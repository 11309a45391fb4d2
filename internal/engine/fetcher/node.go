package fetcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modlock/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modlock/internal/adapters/modrinth"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modlock/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modlock/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "engine.fetcher"

func init() {
	graft.Register(graft.Node[*Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			modrinth.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Fetcher, error) {
			client, err := graft.Dep[*modrinth.Client](ctx)
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

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewFetcher(client, log, tracer, m), nil
		},
	})
}
