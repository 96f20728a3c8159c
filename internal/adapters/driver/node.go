package driver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/classmeta/internal/core/ports"
)

// NodeID is the unique identifier for the driver builder Graft node.
const NodeID graft.ID = "adapter.driver_builder"

func init() {
	graft.Register(graft.Node[ports.DriverBuilder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DriverBuilder, error) {
			return NewBuilder(), nil
		},
	})
}
