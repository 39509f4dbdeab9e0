package readme

import (
	"strings"

	"readmearchitect/internal/domain/entity"
)

const notesFallback = "N/A"

// Section headers in render order.
var Sections = []string{
	"## Description",
	"## Tech Stack",
	"## Features",
	"## Installation",
	"## Additional Notes",
}

// Render builds the basic-mode README. It is deterministic and never fails.
func Render(req entity.GenerationRequest) string {
	notes := req.ExtraNotes
	if notes == "" {
		notes = notesFallback
	}
	bodies := []string{
		req.Description,
		req.TechStack,
		req.Features,
		req.InstallationSteps,
		notes,
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(req.ProjectName)
	b.WriteString("\n")
	for i, header := range Sections {
		b.WriteString("\n")
		b.WriteString(header)
		b.WriteString("\n")
		b.WriteString(bodies[i])
		b.WriteString("\n")
	}
	return b.String()
}
