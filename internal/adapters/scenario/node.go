package scenario

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/genassert/internal/core/ports"
)

// NodeID is the unique identifier for the scenario loader Graft node.
const NodeID graft.ID = "adapter.scenario"

func init() {
	graft.Register(graft.Node[ports.ScenarioLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScenarioLoader, error) {
			return New(), nil
		},
	})
}
