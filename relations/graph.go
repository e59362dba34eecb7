package relations

import (
	"context"
	"fmt"
)

// DefaultMaxDepth bounds graph traversal depth for a single check.
const DefaultMaxDepth = 25

// Graph answers relation queries by traversing the tuple graph. A check
// succeeds on a direct tuple, through userset membership (groups), through
// a derived relation declared in the schema, or through inheritance from a
// related object. Traversal is cycle-safe and depth-bounded.
//
// A Graph is safe for concurrent use if its TupleStore is.
type Graph struct {
	store    TupleStore
	schemas  map[string]Schema
	maxDepth int
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithMaxDepth overrides the traversal depth bound.
func WithMaxDepth(depth int) GraphOption {
	return func(g *Graph) {
		g.maxDepth = depth
	}
}

// WithSchemas registers derivation schemas by object type.
func WithSchemas(schemas ...Schema) GraphOption {
	return func(g *Graph) {
		for _, s := range schemas {
			g.schemas[s.Type] = s
		}
	}
}

// NewGraph creates a Graph over the given store.
func NewGraph(store TupleStore, opts ...GraphOption) *Graph {
	g := &Graph{
		store:    store,
		schemas:  make(map[string]Schema),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check reports whether subject has relation to object.
func (g *Graph) Check(ctx context.Context, subject SubjectRef, relation string, object ObjectRef) (bool, error) {
	return g.check(ctx, subject, relation, object, 0, make(map[string]bool))
}

// Holds makes a Graph usable directly as a relationship resolver over
// (SubjectRef, ObjectRef, string).
func (g *Graph) Holds(ctx context.Context, subject SubjectRef, resource ObjectRef, relation string) (bool, error) {
	return g.Check(ctx, subject, relation, resource)
}

func (g *Graph) check(ctx context.Context, subject SubjectRef, relation string, object ObjectRef, depth int, visited map[string]bool) (bool, error) {
	if depth > g.maxDepth {
		return false, fmt.Errorf("relations: max traversal depth %d exceeded", g.maxDepth)
	}

	// Cycle guard: a (subject, relation, object) triple is checked once.
	key := subject.String() + "#" + relation + "@" + object.String()
	if visited[key] {
		return false, nil
	}
	visited[key] = true

	found, err := g.store.Exists(ctx, Tuple{Subject: subject, Relation: relation, Object: object})
	if err != nil {
		return false, fmt.Errorf("relations: tuple lookup: %w", err)
	}
	if found {
		return true, nil
	}

	if !subject.IsUserset() {
		found, err = g.checkUsersets(ctx, subject, relation, object, depth, visited)
		if err != nil || found {
			return found, err
		}
	}

	schema, ok := g.schemas[object.Type]
	if !ok {
		return false, nil
	}
	for _, d := range schema.Relations[relation] {
		if d.FromRelation != "" {
			found, err = g.check(ctx, subject, d.FromRelation, object, depth+1, visited)
			if err != nil || found {
				return found, err
			}
		}
		if d.ViaRelated != nil {
			found, err = g.checkViaRelated(ctx, subject, object, d.ViaRelated, depth, visited)
			if err != nil || found {
				return found, err
			}
		}
	}

	return false, nil
}

// checkUsersets grants through group membership: if some userset holds the
// relation on the object, a subject that belongs to that userset holds it
// too.
func (g *Graph) checkUsersets(ctx context.Context, subject SubjectRef, relation string, object ObjectRef, depth int, visited map[string]bool) (bool, error) {
	tuples, err := g.store.Read(ctx, Filter{
		Relation:   relation,
		ObjectType: object.Type,
		ObjectID:   object.ID,
	})
	if err != nil {
		return false, fmt.Errorf("relations: userset lookup: %w", err)
	}

	for _, t := range tuples {
		if !t.Subject.IsUserset() {
			// Direct subjects were already checked.
			continue
		}
		found, err := g.check(ctx, subject, t.Subject.Relation, t.Subject.Object, depth+1, visited)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

// checkViaRelated follows the tupleset relation from the object to its
// related objects and checks the derived relation there.
func (g *Graph) checkViaRelated(ctx context.Context, subject SubjectRef, object ObjectRef, via *ViaRelated, depth int, visited map[string]bool) (bool, error) {
	tuples, err := g.store.Read(ctx, Filter{
		Relation:   via.Tupleset,
		ObjectType: object.Type,
		ObjectID:   object.ID,
	})
	if err != nil {
		return false, fmt.Errorf("relations: tupleset lookup: %w", err)
	}

	for _, t := range tuples {
		found, err := g.check(ctx, subject, via.Relation, t.Subject.Object, depth+1, visited)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}
