package ai

import (
	"fmt"
	"strings"
)

// ProjectInput describes a single project to write a description for.
type ProjectInput struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Technologies []string `json:"technologies"`
	Audience     string   `json:"audience"`
	Tone         string   `json:"tone"`
}

// PortfolioProject is one project entry inside a portfolio request.
type PortfolioProject struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Highlights  []string `json:"highlights"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
}

// EducationItem is one education entry inside a portfolio request.
type EducationItem struct {
	School  string `json:"school" binding:"required"`
	Degree  string `json:"degree" binding:"required"`
	Period  string `json:"period"`
	Details string `json:"details"`
}

// PortfolioInput describes a full portfolio to generate content for.
type PortfolioInput struct {
	Name      string             `json:"name" binding:"required"`
	Role      string             `json:"role" binding:"required"`
	Summary   string             `json:"summary" binding:"required"`
	Projects  []PortfolioProject `json:"projects"`
	Education []EducationItem    `json:"education"`
	Skills    []string           `json:"skills"`
	Tone      string             `json:"tone"`
	Language  string             `json:"language"`
}

// ProjectPrompt renders the prompt for a single project description.
func ProjectPrompt(in ProjectInput) string {
	audience := in.Audience
	if audience == "" {
		audience = "Hiring managers and peers"
	}
	tone := in.Tone
	if tone == "" {
		tone = "professional"
	}
	tech := "N/A"
	if len(in.Technologies) > 0 {
		tech = strings.Join(in.Technologies, ", ")
	}

	var b strings.Builder
	b.WriteString("Write a compelling, structured project description.\n")
	fmt.Fprintf(&b, "Title: %s\n", in.Title)
	fmt.Fprintf(&b, "Audience: %s\n", audience)
	fmt.Fprintf(&b, "Tone: %s\n", tone)
	fmt.Fprintf(&b, "Technologies: %s\n", tech)
	fmt.Fprintf(&b, "Base description: %s\n\n", in.Description)
	b.WriteString("Output format: \n")
	b.WriteString("- One-sentence hook\n- Problem & Motivation\n- Approach & Architecture\n- Key Features (bullet list)\n- Tech Stack\n- Impact & Results\n- What I learned\n")
	return b.String()
}

// PortfolioPrompt renders the prompt for full portfolio content.
func PortfolioPrompt(in PortfolioInput) string {
	language := in.Language
	if language == "" {
		language = "English"
	}
	tone := in.Tone
	if tone == "" {
		tone = "confident"
	}

	projectLines := make([]string, 0, len(in.Projects))
	for _, p := range in.Projects {
		link := p.Link
		if link == "" {
			link = "N/A"
		}
		projectLines = append(projectLines, fmt.Sprintf(
			"Project: %s\nDesc: %s\nHighlights: %s\nTech: %s\nLink: %s",
			p.Name, p.Description,
			strings.Join(p.Highlights, ", "),
			strings.Join(p.Tech, ", "),
			link,
		))
	}

	educationLines := make([]string, 0, len(in.Education))
	for _, e := range in.Education {
		period := e.Period
		if period == "" {
			period = "period N/A"
		}
		educationLines = append(educationLines, fmt.Sprintf(
			"Education: %s — %s (%s)\nDetails: %s",
			e.School, e.Degree, period, e.Details,
		))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a polished, responsive-ready portfolio content in %s.\n", language)
	fmt.Fprintf(&b, "Name: %s\nRole: %s\nSummary: %s\n", in.Name, in.Role, in.Summary)
	fmt.Fprintf(&b, "Desired tone: %s\n\n", tone)
	fmt.Fprintf(&b, "Projects:\n%s\n\n", strings.Join(projectLines, "\n"))
	fmt.Fprintf(&b, "Education:\n%s\n\n", strings.Join(educationLines, "\n"))
	fmt.Fprintf(&b, "Skills: %s\n\n", strings.Join(in.Skills, ", "))
	b.WriteString("Output as JSON with keys: hero, about, projects (array with name, blurb, bullets, tech, link), education (array), skills (array), cta. Keep each text concise.")
	return b.String()
}
