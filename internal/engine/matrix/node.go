package matrix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/engine/resolver"
)

// NodeID is the unique identifier for the matrix planner Graft node.
const NodeID graft.ID = "engine.matrix"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{resolver.NodeID},
		Run: func(ctx context.Context) (*Planner, error) {
			r, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewPlanner(r), nil
		},
	})
}
