package content

import (
	"slices"
	"strings"
)

// FilterAll matches every project.
const FilterAll = "all"

// Project is one card in the projects grid.
type Project struct {
	Slug       string
	Title      string
	Summary    string
	Categories []string
	Tags       []string
}

// HasCategory reports whether p is listed under category, ignoring case.
func (p Project) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// FilterProjects returns the projects in category, keeping their order.
// An empty filter or FilterAll returns every project.
func FilterProjects(projects []Project, filter string) []Project {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, FilterAll) {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.HasCategory(filter) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists the distinct categories used by projects, lowercased and sorted.
func Categories(projects []Project) []string {
	var out []string
	for _, p := range projects {
		for _, c := range p.Categories {
			c = strings.ToLower(strings.TrimSpace(c))
			if c != "" && !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	slices.Sort(out)
	return out
}
