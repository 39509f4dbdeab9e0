package entity

import (
	"errors"
	"strings"
)

type GenerationMode string

const (
	ModeBasic    GenerationMode = "basic"
	ModeAdvanced GenerationMode = "advanced"
)

var (
	ErrProjectNameRequired = errors.New("project_name is required")
	ErrInvalidMode         = errors.New("mode must be one of: basic, advanced")
)

// GenerationRequest is the project metadata a README is generated from.
// It is passed by value and never mutated after construction.
type GenerationRequest struct {
	ProjectName       string         `json:"project_name"`
	Description       string         `json:"description"`
	TechStack         string         `json:"tech_stack"`
	Features          string         `json:"features"`
	InstallationSteps string         `json:"installation_steps"`
	ExtraNotes        string         `json:"extra_notes,omitempty"`
	Mode              GenerationMode `json:"mode,omitempty"`
}

// Normalize returns a copy with the mode defaulted to basic.
func (r GenerationRequest) Normalize() GenerationRequest {
	if r.Mode == "" {
		r.Mode = ModeBasic
	}
	r.Mode = GenerationMode(strings.ToLower(string(r.Mode)))
	return r
}

func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.ProjectName) == "" {
		return ErrProjectNameRequired
	}
	switch r.Mode {
	case ModeBasic, ModeAdvanced:
		return nil
	default:
		return ErrInvalidMode
	}
}

type GenerationResult struct {
	Readme string `json:"readme"`
	// SessionID is the correlation id sent upstream; empty in basic mode.
	SessionID string `json:"session_id,omitempty"`
}
