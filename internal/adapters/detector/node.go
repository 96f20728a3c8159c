package detector

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the output mode detector Graft node.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[OutputMode]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (OutputMode, error) {
			return DetectEnvironment(), nil
		},
	})
}
