package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/classmeta/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// EnvLogFormat selects JSON logs when set to "json".
const EnvLogFormat = "CLASSMETA_LOG_FORMAT"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := &Logger{output: os.Stderr, jsonMode: os.Getenv(EnvLogFormat) == "json"}
			l.rebuild()
			return l, nil
		},
	})
}
