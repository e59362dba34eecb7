// Package verdict is an embeddable authorization decision engine. Policies
// over application-defined subject, action, resource and context types are
// composed with And/Or/Not combinators and evaluated by a PermissionChecker
// that returns the decision together with a full evaluation trace.
//
// The heavy lifting lives in the subpackages: policy holds the engine and
// the built-in RBAC, ABAC and ReBAC policies; relations holds the tuple
// store and relation graph backing ReBAC; audit and telemetry observe
// decisions. This package provides convenience wiring for the common
// GORM-backed setup.
package verdict

import (
	"gorm.io/gorm"

	"github.com/getverdict/verdict/relations"
	"github.com/getverdict/verdict/relations/gormstore"
)

// NewGormGraph wires a relation graph to a GORM-backed tuple store,
// migrating the tuple table first. The returned store can seed or prune
// relationship facts; the graph answers relation checks against it.
func NewGormGraph(db *gorm.DB, opts ...relations.GraphOption) (*relations.Graph, *gormstore.Store, error) {
	store := gormstore.New(db)
	if err := store.AutoMigrate(); err != nil {
		return nil, nil, err
	}
	return relations.NewGraph(store, opts...), store, nil
}

// NewMemoryGraph wires a relation graph to an in-memory tuple store, useful
// for tests and for relationship data that is rebuilt at startup.
func NewMemoryGraph(opts ...relations.GraphOption) (*relations.Graph, *relations.MemoryStore) {
	store := relations.NewMemoryStore()
	return relations.NewGraph(store, opts...), store
}
