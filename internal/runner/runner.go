// Package runner owns job lifecycle: creation, asynchronous execution through
// the pipeline, and event publication for SSE subscribers.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/ops"
	"github.com/example/pdf-workbench/internal/pipeline"
)

type Runner struct {
	Executor  pipeline.Executor
	Validator pipeline.Validator

	jobsMu sync.RWMutex
	jobs   map[string]*models.Job

	hub *Hub
}

func New(executor pipeline.Executor, validator pipeline.Validator) *Runner {
	return &Runner{
		Executor:  executor,
		Validator: validator,
		jobs:      map[string]*models.Job{},
		hub:       NewHub(),
	}
}

func (r *Runner) CreateJob(id, documentID, op string, inputs map[string]any) *models.Job {
	j := &models.Job{
		ID:         id,
		DocumentID: documentID,
		Op:         op,
		Inputs:     inputs,
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.jobsMu.Lock()
	r.jobs[id] = j
	r.jobsMu.Unlock()
	r.hub.Publish(id, Event{Event: "job_status", JobID: id, Payload: map[string]any{"status": models.StatusPending}})
	c := *j
	return &c
}

// GetJob returns a snapshot of the job. Callers get a copy: the stored job
// keeps changing while it runs, and handing out the live pointer would race
// with JSON marshaling in the API handlers.
func (r *Runner) GetJob(id string) (*models.Job, bool) {
	r.jobsMu.RLock()
	defer r.jobsMu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, false
	}
	c := *j
	return &c, true
}

func (r *Runner) ListJobs() []*models.Job {
	r.jobsMu.RLock()
	out := make([]*models.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		c := *j
		out = append(out, &c)
	}
	r.jobsMu.RUnlock()
	return out
}

// Start executes a pending job to completion. Progress from the operation is
// fed into the hub's coalescer; the final result is validated before the job
// is marked successful.
func (r *Runner) Start(ctx context.Context, id string) error {
	r.jobsMu.Lock()
	j, ok := r.jobs[id]
	if !ok {
		r.jobsMu.Unlock()
		return errors.New("job not found")
	}
	j.Status = models.StatusRunning
	j.UpdatedAt = time.Now()
	r.jobsMu.Unlock()
	r.hub.Publish(id, Event{Event: "job_status", JobID: id, Payload: map[string]any{"status": models.StatusRunning}})

	appender := r.hub.ProgressAppender(id)
	opCtx := ops.WithProgress(ctx, ops.ProgressCallback(appender))

	// the executor and validator only read the job's immutable fields
	res, _ := r.Executor.Execute(opCtx, j)
	verified, note := r.Validator.Validate(ctx, j, res)
	res.Verified = verified

	status := models.StatusSuccess
	if !verified || res.Error != "" {
		status = models.StatusFailed
	}
	r.jobsMu.Lock()
	j.Result = res
	j.Status = status
	j.UpdatedAt = time.Now()
	r.jobsMu.Unlock()

	r.hub.StopProgressAppender(id)
	r.hub.Publish(id, Event{Event: "result", JobID: id, Payload: previewResult(res)})
	if status == models.StatusFailed {
		r.hub.Publish(id, Event{Event: "job_status", JobID: id, Payload: map[string]any{
			"status": status, "error": res.Error, "validation": note,
		}})
		return nil
	}
	r.hub.Publish(id, Event{Event: "job_status", JobID: id, Payload: map[string]any{"status": status}})
	return nil
}

// Subscribe returns a channel carrying JSON-encoded Event payloads for a job.
// The caller must call the returned unsubscribe func when done.
func (r *Runner) Subscribe(jobID string) (<-chan []byte, func()) {
	ch, unsub := r.hub.Subscribe(jobID)
	return ch, unsub
}

// previewResult truncates large outputs for the event stream; the full result
// stays available on the job itself.
func previewResult(res *models.Result) map[string]any {
	const max = 20000
	preview := res.Output
	var size int
	var truncated bool
	if s, ok := res.Output.(string); ok {
		size = len(s)
		if size > max {
			preview = s[:max]
			truncated = true
		}
	}
	out := map[string]any{
		"job_id":   res.JobID,
		"output":   preview,
		"logs":     res.Logs,
		"verified": res.Verified,
		"error":    res.Error,
	}
	if truncated {
		out["preview_truncated"] = true
		out["bytes_total"] = size
	}
	return out
}
