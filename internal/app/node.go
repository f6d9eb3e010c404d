package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recipe/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/recipe/internal/engine/matrix"
	"go.trai.ch/recipe/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.ProfileNodeID,
			detector.NodeID,
			cas.NodeID,
			shell.NodeID,
			logger.NodeID,
			resolver.NodeID,
			matrix.NodeID,
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
	recipes, err := graft.Dep[ports.RecipeLoader](ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := graft.Dep[ports.ProfileLoader](ctx)
	if err != nil {
		return nil, err
	}

	det, err := graft.Dep[ports.ToolchainDetector](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.PackageStore](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	r, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	planner, err := graft.Dep[*matrix.Planner](ctx)
	if err != nil {
		return nil, err
	}

	return New(recipes, profiles, det, store, executor, log, r, planner), nil
}
