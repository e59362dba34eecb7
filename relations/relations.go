// Package relations provides a tuple-based relationship backend for
// relationship-based access control.
//
// Authorization data is stored as relationship tuples in the style of
// Google Zanzibar: (subject, relation, object). The package provides the
// core tuple types, a TupleStore interface with an in-memory
// implementation, and a Graph that answers relation queries by traversing
// the tuple graph, including group membership (usersets), derived relations
// (owner counts as editor) and inheritance through related objects (a
// document inherits its folder's viewers).
//
// The Graph satisfies the engine's RelationshipResolver contract through
// the generic Resolver adapter, so a RebacPolicy can be backed by it
// directly. Persistence of tuples is entirely this package's concern; the
// decision engine never touches the store.
package relations

// ObjectRef is a typed reference to an object, e.g. "document:doc1".
type ObjectRef struct {
	Type string
	ID   string
}

// String returns the canonical "type:id" form.
func (o ObjectRef) String() string {
	return o.Type + ":" + o.ID
}

// SubjectRef identifies the subject of a tuple. A subject is either a
// direct object reference ("user:alice") or a userset, meaning all holders of a
// relation on an object ("group:eng#member").
type SubjectRef struct {
	Object   ObjectRef
	Relation string
}

// String returns "type:id" for direct subjects and "type:id#relation" for
// usersets.
func (s SubjectRef) String() string {
	if s.Relation == "" {
		return s.Object.String()
	}
	return s.Object.String() + "#" + s.Relation
}

// IsUserset reports whether the subject reference is a userset.
func (s SubjectRef) IsUserset() bool {
	return s.Relation != ""
}

// Tuple is one relationship fact: subject has relation to object.
//
// Examples:
//   - user:alice is a viewer of document:doc1
//   - group:eng#member is an editor of document:doc1 (every member edits)
//   - folder:home is the parent of document:doc1
type Tuple struct {
	Subject  SubjectRef
	Relation string
	Object   ObjectRef
}

// String returns the canonical "subject#relation@object" form.
func (t Tuple) String() string {
	return t.Subject.String() + "#" + t.Relation + "@" + t.Object.String()
}

// Filter selects tuples; all non-empty fields must match.
type Filter struct {
	SubjectType     string
	SubjectID       string
	SubjectRelation string
	Relation        string
	ObjectType      string
	ObjectID        string
}

// Matches reports whether the tuple satisfies the filter.
func (f Filter) Matches(t Tuple) bool {
	if f.SubjectType != "" && t.Subject.Object.Type != f.SubjectType {
		return false
	}
	if f.SubjectID != "" && t.Subject.Object.ID != f.SubjectID {
		return false
	}
	if f.SubjectRelation != "" && t.Subject.Relation != f.SubjectRelation {
		return false
	}
	if f.Relation != "" && t.Relation != f.Relation {
		return false
	}
	if f.ObjectType != "" && t.Object.Type != f.ObjectType {
		return false
	}
	if f.ObjectID != "" && t.Object.ID != f.ObjectID {
		return false
	}
	return true
}

// Derivation describes one way a relation can be derived instead of being
// written directly.
type Derivation struct {
	// FromRelation derives the relation from another relation on the same
	// object: a derivation {FromRelation: "owner"} on "editor" means every
	// owner is also an editor.
	FromRelation string

	// ViaRelated derives the relation by following another relation to a
	// related object and checking a relation there.
	ViaRelated *ViaRelated
}

// ViaRelated is "follow the pointer" inheritance: follow Tupleset from the
// object to its related objects, then check Relation on those. For example
// {Tupleset: "parent", Relation: "viewer"} on a document's "viewer" lets
// the parent folder's viewers view the document.
type ViaRelated struct {
	Tupleset string
	Relation string
}

// Schema declares, per object type, how relations may be derived. Relations
// without an entry are purely direct.
type Schema struct {
	Type      string
	Relations map[string][]Derivation
}

// Object is shorthand for constructing an ObjectRef.
func Object(objectType, id string) ObjectRef {
	return ObjectRef{Type: objectType, ID: id}
}

// Subject constructs a direct (non-userset) subject reference.
func Subject(subjectType, id string) SubjectRef {
	return SubjectRef{Object: ObjectRef{Type: subjectType, ID: id}}
}

// Userset constructs a userset subject reference.
func Userset(objectType, id, relation string) SubjectRef {
	return SubjectRef{
		Object:   ObjectRef{Type: objectType, ID: id},
		Relation: relation,
	}
}

// Relate constructs a tuple with a direct subject.
func Relate(subject SubjectRef, relation string, object ObjectRef) Tuple {
	return Tuple{Subject: subject, Relation: relation, Object: object}
}
