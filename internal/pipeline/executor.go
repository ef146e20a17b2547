// Package pipeline dispatches jobs to operations and checks their outputs.
package pipeline

import (
	"context"

	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/ops"
	"github.com/example/pdf-workbench/internal/store"
)

type Executor interface {
	Execute(ctx context.Context, job *models.Job) (*models.Result, error)
}

// OpExecutor resolves the job's document and operation and runs it.
type OpExecutor struct {
	Registry *ops.Registry
	Store    *store.DocumentStore
}

func (e *OpExecutor) Execute(ctx context.Context, job *models.Job) (*models.Result, error) {
	doc, ok := e.Store.Get(job.DocumentID)
	if !ok {
		return &models.Result{JobID: job.ID, Error: "unknown document: " + job.DocumentID}, nil
	}
	op, ok := e.Registry.Get(job.Op)
	if !ok {
		return &models.Result{JobID: job.ID, Error: "unknown op: " + job.Op}, nil
	}
	output, logs, err := op.Execute(ctx, doc, job.Inputs)
	res := &models.Result{JobID: job.ID, Output: output, Logs: logs}
	if err != nil {
		res.Error = err.Error()
	}
	return res, nil
}
