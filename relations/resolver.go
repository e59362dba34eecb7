package relations

import "context"

// Resolver bridges application subject/resource types to graph references,
// satisfying the decision engine's RelationshipResolver contract: the
// engine hands it the application's own types, the ref functions map them
// to graph references, and the graph answers the query.
type Resolver[S, R any, Rel ~string] struct {
	graph       *Graph
	subjectRef  func(S) SubjectRef
	resourceRef func(R) ObjectRef
}

// NewResolver creates a resolver over the graph using the given reference
// mappings.
func NewResolver[S, R any, Rel ~string](
	graph *Graph,
	subjectRef func(S) SubjectRef,
	resourceRef func(R) ObjectRef,
) *Resolver[S, R, Rel] {
	return &Resolver[S, R, Rel]{
		graph:       graph,
		subjectRef:  subjectRef,
		resourceRef: resourceRef,
	}
}

// Holds reports whether the relation holds between subject and resource.
func (r *Resolver[S, R, Rel]) Holds(ctx context.Context, subject S, resource R, relation Rel) (bool, error) {
	return r.graph.Check(ctx, r.subjectRef(subject), string(relation), r.resourceRef(resource))
}
