// Package api wires the HTTP surface: document upload/fetch and the job
// endpoints driving the PDF operations.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/example/pdf-workbench/internal/fetch"
	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/ops"
	"github.com/example/pdf-workbench/internal/runner"
	"github.com/example/pdf-workbench/internal/store"
)

var pdfMagic = []byte("%PDF-")

type Server struct {
	Store    *store.DocumentStore
	Runner   *runner.Runner
	Fetcher  *fetch.Fetcher
	Registry *ops.Registry

	MaxUploadBytes int64
}

func NewServer(st *store.DocumentStore, r *runner.Runner, f *fetch.Fetcher, reg *ops.Registry) *Server {
	return &Server{
		Store:          st,
		Runner:         r,
		Fetcher:        f,
		Registry:       reg,
		MaxUploadBytes: 50 << 20,
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/ops", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, s.Registry.Names())
	})

	mux.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			respondJSON(w, s.Store.List())
		case http.MethodPost:
			s.handleCreateDocument(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/documents/", func(w http.ResponseWriter, r *http.Request) {
		// path: /documents/{id}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := r.URL.Path[len("/documents/"):]
		doc, ok := s.Store.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		respondJSON(w, doc)
	})

	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			respondJSON(w, s.Runner.ListJobs())
		case http.MethodPost:
			var req struct {
				DocumentID string         `json:"document_id"`
				Op         string         `json:"op"`
				Inputs     map[string]any `json:"inputs"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if _, ok := s.Store.Get(req.DocumentID); !ok {
				http.Error(w, "unknown document: "+req.DocumentID, http.StatusBadRequest)
				return
			}
			if _, ok := s.Registry.Get(req.Op); !ok {
				http.Error(w, "unknown op: "+req.Op, http.StatusBadRequest)
				return
			}
			j := s.Runner.CreateJob(genID(), req.DocumentID, req.Op, req.Inputs)
			respondJSON(w, j)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/jobs/start/", func(w http.ResponseWriter, r *http.Request) {
		// path: /jobs/start/{id}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := r.URL.Path[len("/jobs/start/"):]
		if _, ok := s.Runner.GetJob(id); !ok {
			http.NotFound(w, r)
			return
		}
		go func() {
			if err := s.Runner.Start(context.Background(), id); err != nil {
				log.Printf("start error: %v", err)
			}
		}()
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("/jobs/events/", func(w http.ResponseWriter, r *http.Request) {
		// path: /jobs/events/{id}
		id := r.URL.Path[len("/jobs/events/"):]
		s.handleEvents(w, r, id)
	})

	mux.HandleFunc("/jobs/", func(w http.ResponseWriter, r *http.Request) {
		// path: /jobs/{id}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := r.URL.Path[len("/jobs/"):]
		j, ok := s.Runner.GetJob(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		respondJSON(w, j)
	})
}

// handleCreateDocument accepts either a multipart upload (fields "file" and
// optional "password") or a JSON body {url, password} fetched server-side.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var doc *models.Document

	ct := r.Header.Get("Content-Type")
	if ct != "" && len(ct) >= len("multipart/") && ct[:len("multipart/")] == "multipart/" {
		if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, s.MaxUploadBytes+1))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if int64(len(data)) > s.MaxUploadBytes {
			http.Error(w, fmt.Sprintf("upload exceeds limit of %d bytes", s.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		if !bytes.HasPrefix(data, pdfMagic) {
			http.Error(w, "uploaded file is not a PDF", http.StatusBadRequest)
			return
		}
		doc = &models.Document{
			ID:       genID(),
			Name:     header.Filename,
			Data:     data,
			Password: r.FormValue("password"),
			Source:   "upload",
		}
	} else {
		var req struct {
			URL      string `json:"url"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.URL == "" {
			http.Error(w, "missing url", http.StatusBadRequest)
			return
		}
		data, err := s.Fetcher.PDF(r.Context(), req.URL)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		doc = &models.Document{
			ID:       genID(),
			Name:     nameFromURL(req.URL),
			Data:     data,
			Password: req.Password,
			Source:   req.URL,
		}
	}

	ops.Probe(doc)
	s.Store.Put(doc)
	respondJSON(w, doc)
}

// handleEvents streams job events as SSE until the client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, jobID string) {
	if _, ok := s.Runner.GetJob(jobID); !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, unsubscribe := s.Runner.Subscribe(jobID)
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case b, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func nameFromURL(url string) string {
	name := url
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '/' {
			name = url[i+1:]
			break
		}
	}
	if name == "" {
		name = "document.pdf"
	}
	return name
}

const idLetters = "abcdefghijklmnopqrstuvwxyz"

func genID() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = idLetters[rand.Intn(len(idLetters))]
	}
	return time.Now().Format("20060102150405") + "-" + string(suffix)
}
