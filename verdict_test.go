package verdict

import (
	"context"
	"testing"

	"github.com/getverdict/verdict/relations"
)

func TestNewMemoryGraph(t *testing.T) {
	graph, store := NewMemoryGraph()

	tuple := relations.Relate(relations.Subject("user", "alice"), "owner", relations.Object("document", "doc1"))
	if err := store.Write(context.Background(), tuple); err != nil {
		t.Fatal(err)
	}

	ok, err := graph.Check(context.Background(), relations.Subject("user", "alice"), "owner", relations.Object("document", "doc1"))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("seeded relation should hold")
	}
}
