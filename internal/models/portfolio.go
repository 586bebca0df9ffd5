package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Portfolio is the single profile document behind the site and the resume
type Portfolio struct {
	Personal       Personal  `json:"personal"`
	Education      Education `json:"education"`
	Skills         Skills    `json:"skills"`
	Certifications []string  `json:"certifications"`
}

// Personal holds identity and contact details
type Personal struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Objective string `json:"objective"`
}

// Education holds the single education entry shown on the resume
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduation_year"`
	Status         string `json:"status"`
}

// IsZero reports whether every education field is empty
func (e Education) IsZero() bool {
	return e == Education{}
}

// Normalize replaces nil collections with empty ones
func (p *Portfolio) Normalize() {
	if p.Skills == nil {
		p.Skills = Skills{}
	}
	if p.Certifications == nil {
		p.Certifications = []string{}
	}
	for i := range p.Skills {
		if p.Skills[i].Items == nil {
			p.Skills[i].Items = []string{}
		}
	}
}

// SkillCategory is one named group of skills, e.g. "data_science"
type SkillCategory struct {
	Name  string
	Items []string
}

// Skills is an ordered mapping from category name to skill list.
// It encodes as a JSON object and keeps the key order found in the input.
type Skills []SkillCategory

// Get returns the items of a category and whether it exists
func (s Skills) Get(name string) ([]string, bool) {
	for _, c := range s {
		if c.Name == name {
			return c.Items, true
		}
	}
	return nil, false
}

// Set replaces the items of an existing category in place, or appends a new one
func (s *Skills) Set(name string, items []string) {
	if items == nil {
		items = []string{}
	}
	for i := range *s {
		if (*s)[i].Name == name {
			(*s)[i].Items = items
			return
		}
	}
	*s = append(*s, SkillCategory{Name: name, Items: items})
}

// MarshalJSON encodes the categories as an object in slice order
func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		items := c.Items
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of string lists, preserving key order.
// A repeated key keeps its first position and its last value.
func (s *Skills) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = Skills{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected object, got %v", tok)
	}

	out := Skills{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("skills: unexpected key %v", keyTok)
		}

		var items []string
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("skills %q: %w", name, err)
		}
		out.Set(name, items)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// PortfolioPatch is a merge update of the portfolio document.
// Personal, education and skills merge by key; certifications replace wholesale.
type PortfolioPatch struct {
	Personal       *PersonalPatch  `json:"personal"`
	Education      *EducationPatch `json:"education"`
	Skills         Skills          `json:"skills"`
	Certifications *[]string       `json:"certifications"`
}

// PersonalPatch carries the personal fields present in an update
type PersonalPatch struct {
	Name      *string `json:"name"`
	Title     *string `json:"title"`
	Location  *string `json:"location"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	LinkedIn  *string `json:"linkedin"`
	GitHub    *string `json:"github"`
	Objective *string `json:"objective"`
}

// EducationPatch carries the education fields present in an update
type EducationPatch struct {
	Degree         *string `json:"degree"`
	Institution    *string `json:"institution"`
	GraduationYear *string `json:"graduation_year"`
	Status         *string `json:"status"`
}

// Apply merges the patch into p
func (pp PortfolioPatch) Apply(p *Portfolio) {
	if pp.Personal != nil {
		pp.Personal.apply(&p.Personal)
	}
	if pp.Education != nil {
		pp.Education.apply(&p.Education)
	}
	for _, c := range pp.Skills {
		p.Skills.Set(c.Name, c.Items)
	}
	if pp.Certifications != nil {
		p.Certifications = append([]string{}, (*pp.Certifications)...)
	}
}

func (pp *PersonalPatch) apply(p *Personal) {
	setString(&p.Name, pp.Name)
	setString(&p.Title, pp.Title)
	setString(&p.Location, pp.Location)
	setString(&p.Phone, pp.Phone)
	setString(&p.Email, pp.Email)
	setString(&p.LinkedIn, pp.LinkedIn)
	setString(&p.GitHub, pp.GitHub)
	setString(&p.Objective, pp.Objective)
}

func (ep *EducationPatch) apply(e *Education) {
	setString(&e.Degree, ep.Degree)
	setString(&e.Institution, ep.Institution)
	setString(&e.GraduationYear, ep.GraduationYear)
	setString(&e.Status, ep.Status)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
