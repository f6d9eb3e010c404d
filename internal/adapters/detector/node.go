package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain detector Graft node.
const NodeID graft.ID = "adapter.toolchain_detector"

func init() {
	graft.Register(graft.Node[ports.ToolchainDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ToolchainDetector, error) {
			return NewHost(), nil
		},
	})
}
