package ops

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/pdf-workbench/internal/models"
)

type fakeOp struct{ name string }

func (f *fakeOp) Name() string { return f.name }
func (f *fakeOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	return f.name, "", nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeOp{name: "beta"})
	r.Register(&fakeOp{name: "alpha"})

	if _, ok := r.Get("alpha"); !ok {
		t.Error("Get(alpha) missing")
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get(nope) reported a hit")
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()
	first := &fakeOp{name: "op"}
	second := &fakeOp{name: "op"}
	r.Register(first)
	r.Register(second)
	got, _ := r.Get("op")
	if got != Operation(second) {
		t.Error("later registration did not replace earlier one")
	}
}
