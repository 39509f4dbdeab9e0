package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project is one persisted generation: the caller's input plus the README.
type Project struct {
	ID                string    `json:"id" bson:"id"`
	UserID            string    `json:"user_id" bson:"user_id"`
	ProjectName       string    `json:"project_name" bson:"project_name"`
	Description       string    `json:"description" bson:"description"`
	TechStack         string    `json:"tech_stack" bson:"tech_stack"`
	Features          string    `json:"features" bson:"features"`
	InstallationSteps string    `json:"installation_steps" bson:"installation_steps"`
	ExtraNotes        string    `json:"extra_notes" bson:"extra_notes"`
	GeneratedReadme   string    `json:"generated_readme" bson:"generated_readme"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

func NewProject(userID string, req GenerationRequest, readme string) *Project {
	return &Project{
		ID:                uuid.New().String(),
		UserID:            userID,
		ProjectName:       req.ProjectName,
		Description:       req.Description,
		TechStack:         req.TechStack,
		Features:          req.Features,
		InstallationSteps: req.InstallationSteps,
		ExtraNotes:        req.ExtraNotes,
		GeneratedReadme:   readme,
		CreatedAt:         time.Now().UTC(),
	}
}
