package resume

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"podder.dev/internal/models"
)

// Section headings, in document order
const (
	HeadingObjective      = "PROFESSIONAL OBJECTIVE"
	HeadingEducation      = "EDUCATION"
	HeadingSkills         = "TECHNICAL SKILLS"
	HeadingProjects       = "PROJECTS"
	HeadingCertifications = "CERTIFICATIONS"
)

const (
	sectionGap = 12
	projectGap = 8
	separator  = " | "
)

// Assemble builds the resume from the portfolio and its projects.
// Empty fields and lists are left out entirely; a section with nothing to
// show has no heading either.
func Assemble(p models.Portfolio, projects []models.Project) Document {
	a := &assembler{}

	a.header(p.Personal)
	a.objective(p.Personal.Objective)
	a.education(p.Education)
	a.skills(p.Skills)
	a.projects(projects)
	a.certifications(p.Certifications)

	title := "Resume"
	if name := strings.TrimSpace(p.Personal.Name); name != "" {
		title = name + " Resume"
	}
	return Document{
		Title:  title,
		Author: strings.TrimSpace(p.Personal.Name),
		Blocks: a.blocks,
	}
}

type assembler struct {
	blocks []Block
}

func (a *assembler) add(kind Kind, style Style, runs []Run) {
	a.blocks = append(a.blocks, Block{Kind: kind, Style: style, Runs: runs})
}

func (a *assembler) heading(text string) {
	a.add(SectionHeading, StyleHeading, plain(text))
}

func (a *assembler) body(runs []Run) {
	a.add(BodyText, StyleBody, runs)
}

func (a *assembler) spacer(h float64) {
	a.blocks = append(a.blocks, Block{Kind: Spacer, Height: h})
}

func (a *assembler) header(p models.Personal) {
	start := len(a.blocks)

	if name := strings.TrimSpace(p.Name); name != "" {
		a.add(Title, StyleTitle, plain(name))
	}
	if title := strings.TrimSpace(p.Title); title != "" {
		a.add(SubHeading, StyleSubtitle, plain(title))
	}

	contact := labelled(
		"Email", p.Email,
		"Phone", p.Phone,
		"Location", p.Location,
	)
	if contact != "" {
		a.body(plain(contact))
	}

	links := labelled(
		"LinkedIn", p.LinkedIn,
		"GitHub", p.GitHub,
	)
	if links != "" {
		a.add(LinkLine, StyleBody, plain(links))
	}

	if len(a.blocks) > start {
		a.spacer(sectionGap)
	}
}

func (a *assembler) objective(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	a.heading(HeadingObjective)
	a.body(plain(text))
	a.spacer(sectionGap)
}

func (a *assembler) education(e models.Education) {
	var lines [][]Run
	if degree := strings.TrimSpace(e.Degree); degree != "" {
		lines = append(lines, bold(degree))
	}
	if inst := strings.TrimSpace(e.Institution); inst != "" {
		lines = append(lines, plain(inst))
	}

	status, year := strings.TrimSpace(e.Status), strings.TrimSpace(e.GraduationYear)
	switch {
	case status != "" && year != "":
		lines = append(lines, plain(status+": "+year))
	case status != "":
		lines = append(lines, plain(status))
	case year != "":
		lines = append(lines, plain(year))
	}

	if len(lines) == 0 {
		return
	}

	var runs []Run
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, Run{Break: true})
		}
		runs = append(runs, line...)
	}

	a.heading(HeadingEducation)
	a.body(runs)
	a.spacer(sectionGap)
}

func (a *assembler) skills(skills models.Skills) {
	var lines [][]Run
	for _, c := range skills {
		items := nonBlank(c.Items)
		if len(items) == 0 {
			continue
		}
		lines = append(lines, []Run{
			{Text: CategoryName(c.Name) + ":", Bold: true},
			{Text: " " + strings.Join(items, ", ")},
		})
	}
	if len(lines) == 0 {
		return
	}

	a.heading(HeadingSkills)
	for _, line := range lines {
		a.body(line)
	}
	a.spacer(sectionGap)
}

func (a *assembler) projects(projects []models.Project) {
	var entries []*assembler
	for _, p := range projects {
		entry := &assembler{}
		entry.project(p)
		if len(entry.blocks) > 0 {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return
	}

	a.heading(HeadingProjects)
	for _, entry := range entries {
		a.blocks = append(a.blocks, entry.blocks...)
		a.spacer(projectGap)
	}
}

func (a *assembler) project(p models.Project) {
	if title := strings.TrimSpace(p.Title); title != "" {
		a.add(SubHeading, StyleSubHeading, bold(title))
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		a.body(plain(desc))
	}
	if tech := nonBlank(p.Technologies); len(tech) > 0 {
		a.body([]Run{
			{Text: "Technologies:", Bold: true},
			{Text: " " + strings.Join(tech, ", ")},
		})
	}

	links := labelled(
		"GitHub", p.GitHubLink,
		"Demo", p.DemoLink,
	)
	if links != "" {
		a.add(LinkLine, StyleBody, plain(links))
	}
}

func (a *assembler) certifications(certs []string) {
	certs = nonBlank(certs)
	if len(certs) == 0 {
		return
	}

	a.heading(HeadingCertifications)
	for _, c := range certs {
		a.add(BulletLine, StyleBody, plain("• "+c))
	}
	a.spacer(sectionGap)
}

// CategoryName formats a skill category key for display:
// "tools_frameworks" becomes "Tools Frameworks".
func CategoryName(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// labelled joins "Label: value" pairs with a separator, skipping blank values.
// pairs alternates label and value.
func labelled(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := strings.TrimSpace(pairs[i+1]); v != "" {
			parts = append(parts, pairs[i]+": "+v)
		}
	}
	return strings.Join(parts, separator)
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
