// Package store keeps uploaded documents in memory for the lifetime of the
// process. Every handler addresses a document explicitly by ID.
package store

import (
	"sync"
	"time"

	"github.com/example/pdf-workbench/internal/models"
)

type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*models.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: map[string]*models.Document{}}
}

func (s *DocumentStore) Put(doc *models.Document) {
	doc.CreatedAt = time.Now()
	doc.Size = len(doc.Data)
	s.mu.Lock()
	s.docs[doc.ID] = doc
	s.mu.Unlock()
}

func (s *DocumentStore) Get(id string) (*models.Document, bool) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	return doc, ok
}

func (s *DocumentStore) List() []*models.Document {
	s.mu.RLock()
	out := make([]*models.Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	s.mu.RUnlock()
	return out
}

func (s *DocumentStore) Delete(id string) {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
}
