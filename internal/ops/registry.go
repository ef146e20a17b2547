// Package ops implements the PDF operations exposed by the service. Each
// operation is a thin wrapper around a library call: the PDF libraries do the
// format-level work, ops only marshal inputs and outputs.
package ops

import (
	"context"
	"sort"

	"github.com/example/pdf-workbench/internal/models"
)

// Operation is one named action against a stored document. Execute returns a
// JSON-encodable output, a short log line, and an error. Implementations must
// not mutate the document.
type Operation interface {
	Name() string
	Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (output any, logs string, err error)
}

type Registry struct {
	ops map[string]Operation
}

func NewRegistry() *Registry {
	return &Registry{ops: map[string]Operation{}}
}

func (r *Registry) Register(op Operation) {
	r.ops[op.Name()] = op
}

func (r *Registry) Get(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names lists the registered operations sorted alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.ops))
	for name := range r.ops {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
