package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// FileLoader reads a JSON catalog document from disk.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the JSON document at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Name identifies the loader in logs and metrics.
func (l *FileLoader) Name() string {
	return "file"
}

// Path returns the watched file path.
func (l *FileLoader) Path() string {
	return l.path
}

// Read decodes the document without validating it.
func (l *FileLoader) Read() (Data, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return Data{}, fmt.Errorf("read %s: %w", l.path, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("decode %s: %w", l.path, err)
	}
	return data, nil
}

// Load parses the document into a snapshot.
func (l *FileLoader) Load(_ context.Context) (*Snapshot, error) {
	data, err := l.Read()
	if err != nil {
		return nil, err
	}
	return NewSnapshot("file:"+l.path, data)
}

// Documents is the persistent catalog source, implemented by the Mongo repository.
type Documents interface {
	FindMaterials(ctx context.Context) ([]model.Material, error)
	FindSpecifications(ctx context.Context) ([]model.Specification, error)
	FindGuides(ctx context.Context) ([]model.GuideEntry, error)
	FindDiluent(ctx context.Context) (*model.Material, error)
}

// DocumentLoader builds snapshots from a Documents source.
type DocumentLoader struct {
	docs Documents
}

// NewDocumentLoader creates a loader over docs.
func NewDocumentLoader(docs Documents) *DocumentLoader {
	return &DocumentLoader{docs: docs}
}

// Name identifies the loader in logs and metrics.
func (l *DocumentLoader) Name() string {
	return "mongodb"
}

// Load queries every collection and builds one snapshot.
func (l *DocumentLoader) Load(ctx context.Context) (*Snapshot, error) {
	materials, err := l.docs.FindMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	specs, err := l.docs.FindSpecifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("load specifications: %w", err)
	}
	guides, err := l.docs.FindGuides(ctx)
	if err != nil {
		return nil, fmt.Errorf("load guides: %w", err)
	}
	diluent, err := l.docs.FindDiluent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load diluent: %w", err)
	}

	return NewSnapshot("mongodb", Data{
		Diluent:        diluent,
		Materials:      materials,
		Specifications: specs,
		Guides:         guides,
	})
}
