package service

import (
	"sync"
	"time"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
)

// SessionOptions configures a new formulation session.
type SessionOptions struct {
	BeverageType string       `json:"beverage_type"`
	Flavor       string       `json:"flavor,omitempty"`
	VolumeML     float64      `json:"volume_ml"`
	PHMode       model.PHMode `json:"ph_mode"`
	ReferencePH  float64      `json:"reference_ph"`
	CostTarget   *float64     `json:"cost_target,omitempty"`
}

// Session owns one formulation. All access to the formulation goes through mu.
type Session struct {
	ID        string
	Options   SessionOptions
	CreatedAt time.Time

	mu        sync.Mutex
	form      *model.Formulation
	updatedAt time.Time
}

func newSession(id string, opts SessionOptions, form *model.Formulation) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Options:   opts,
		CreatedAt: now,
		form:      form,
		updatedAt: now,
	}
}

// params returns the per-evaluation overrides carried by the options.
func (o SessionOptions) params() engine.Params {
	return engine.Params{
		PHMode:      o.PHMode,
		ReferencePH: o.ReferencePH,
		VolumeML:    o.VolumeML,
		CostTarget:  o.CostTarget,
	}
}

func (s *Session) touch() {
	s.updatedAt = time.Now().UTC()
}

// SessionState is a consistent copy of a session taken under its lock,
// together with the evaluation of that copy.
//
// @Description Formulation session with its latest evaluation
type SessionState struct {
	ID            string               `json:"id" example:"3f2b8c9e-4a1d-4f7a-9c0e-2d6b5a1e7f40"`
	Options       SessionOptions       `json:"options"`
	Specification *model.Specification `json:"specification,omitempty"`
	Formulation   *model.Formulation   `json:"formulation"`
	Evaluation    engine.Evaluation    `json:"evaluation"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
