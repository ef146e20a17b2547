package models

import (
	"time"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Document is an uploaded or fetched PDF held by the store. Data and Password
// never leave the server; the JSON view is the summary the API returns.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Data      []byte    `json:"-"`
	Password  string    `json:"-"`
	Encrypted bool      `json:"encrypted"`
	Pages     int       `json:"pages"`
	Size      int       `json:"size"`
	Source    string    `json:"source"` // "upload" or the fetched URL
	CreatedAt time.Time `json:"created_at"`
}

// Job is one operation requested against a stored document.
type Job struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Op         string         `json:"op"`
	Inputs     map[string]any `json:"inputs,omitempty"`
	Status     Status         `json:"status"`
	Result     *Result        `json:"result,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Result carries an operation's output. Output is JSON-encodable; binary
// payloads (PDFs, images, docx) appear base64-encoded inside it.
type Result struct {
	JobID    string `json:"job_id"`
	Output   any    `json:"output,omitempty"`
	Logs     string `json:"logs,omitempty"`
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}
