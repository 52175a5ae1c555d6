package storage

import (
	"cultureland/internal/domain/reactions"
	"cultureland/internal/domain/reviews"
	"cultureland/internal/infra/dbx"
)

// Container holds every repository, all sharing one pool.
type Container struct {
	Reviews   reviews.Store
	Reactions reactions.Store
}

func NewContainer(db dbx.Querier) *Container {
	return &Container{
		Reviews:   reviews.NewRepository(db),
		Reactions: reactions.NewRepository(db),
	}
}
