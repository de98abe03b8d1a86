package ai

import (
	"strings"
	"testing"
)

func TestProjectPrompt_Defaults(t *testing.T) {
	t.Parallel()

	prompt := ProjectPrompt(ProjectInput{
		Title:       "Weather CLI",
		Description: "A terminal weather client.",
	})

	for _, want := range []string{
		"Title: Weather CLI",
		"Audience: Hiring managers and peers",
		"Tone: professional",
		"Technologies: N/A",
		"Base description: A terminal weather client.",
		"One-sentence hook",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestProjectPrompt_ExplicitFields(t *testing.T) {
	t.Parallel()

	prompt := ProjectPrompt(ProjectInput{
		Title:        "Weather CLI",
		Description:  "A terminal weather client.",
		Technologies: []string{"Go", "Redis"},
		Audience:     "Recruiters",
		Tone:         "casual",
	})

	if !strings.Contains(prompt, "Technologies: Go, Redis") {
		t.Errorf("technologies not joined: %s", prompt)
	}
	if !strings.Contains(prompt, "Audience: Recruiters") || !strings.Contains(prompt, "Tone: casual") {
		t.Errorf("explicit audience/tone not honored: %s", prompt)
	}
}

func TestPortfolioPrompt(t *testing.T) {
	t.Parallel()

	prompt := PortfolioPrompt(PortfolioInput{
		Name:    "Alice",
		Role:    "Backend Engineer",
		Summary: "Ships reliable services.",
		Projects: []PortfolioProject{
			{Name: "PortfolioPal", Description: "Portfolio writer", Highlights: []string{"fast", "simple"}, Tech: []string{"Go"}},
		},
		Education: []EducationItem{
			{School: "State University", Degree: "BSc CS"},
		},
		Skills: []string{"Go", "MongoDB"},
	})

	for _, want := range []string{
		"portfolio content in English",
		"Name: Alice",
		"Desired tone: confident",
		"Project: PortfolioPal",
		"Highlights: fast, simple",
		"Link: N/A",
		"Education: State University — BSc CS (period N/A)",
		"Skills: Go, MongoDB",
		"Output as JSON",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
