package models

// Project represents a portfolio project
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHubLink   string   `json:"github_link"`
	DemoLink     string   `json:"demo_link"`
	Image        string   `json:"image"`
	CodeSnippet  string   `json:"code_snippet,omitempty"`
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// Normalize replaces nil slices so the document always encodes as arrays
func (l *ProjectList) Normalize() {
	if l.Projects == nil {
		l.Projects = []Project{}
	}
	for i := range l.Projects {
		if l.Projects[i].Technologies == nil {
			l.Projects[i].Technologies = []string{}
		}
	}
}

// IndexOf returns the position of the project with the given id, or -1
func (l *ProjectList) IndexOf(id string) int {
	for i := range l.Projects {
		if l.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// ProjectPatch carries the fields of a partial project update.
// A nil field leaves the stored value untouched.
type ProjectPatch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	GitHubLink   *string   `json:"github_link"`
	DemoLink     *string   `json:"demo_link"`
	Image        *string   `json:"image"`
	CodeSnippet  *string   `json:"code_snippet"`
}

// Apply copies every set field of the patch onto p
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Technologies != nil {
		p.Technologies = append([]string{}, (*pp.Technologies)...)
	}
	if pp.GitHubLink != nil {
		p.GitHubLink = *pp.GitHubLink
	}
	if pp.DemoLink != nil {
		p.DemoLink = *pp.DemoLink
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.CodeSnippet != nil {
		p.CodeSnippet = *pp.CodeSnippet
	}
}
