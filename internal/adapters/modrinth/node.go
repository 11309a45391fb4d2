package modrinth

import (
	"context"
	"net/http"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/metrics"
	"go.trai.ch/modlock/internal/build"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
)

// NodeID is the unique identifier for the Modrinth client Graft node.
const NodeID graft.ID = "adapter.modrinth"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{metrics.NodeID},
		Run: func(ctx context.Context) (*Client, error) {
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			baseURL := os.Getenv(domain.APIURLEnv)
			if baseURL == "" {
				baseURL = ProductionURL
			}

			return NewClient(baseURL,
				WithToken(os.Getenv(domain.APITokenEnv)),
				WithUserAgent(build.UserAgent()),
				WithHTTPClient(&http.Client{
					Timeout:   httpClientTimeout,
					Transport: m.InstrumentTransport(http.DefaultTransport),
				}),
			)
		},
	})
}
