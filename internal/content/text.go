// Package content holds the copy shown on the portfolio pages.
package content

var (
	AboutMe = `I design and build websites that feel fast, look sharp and are pleasant to use.
	Most of my work sits where interface design meets engineering: turning a sketch into a
	responsive layout, shaving milliseconds off a page load, or making a form that tells you
	exactly what went wrong. Lately that has meant writing more Go on the server side so the
	front end has less to carry.`

	// HeroPhrases rotate through the typed-text banner on the home page.
	HeroPhrases = []string{
		"Web Developer",
		"UI/UX Enthusiast",
		"Front-End Engineer",
		"Creative Coder",
	}

	Projects = []Project{
		{
			Slug:  "portfolio",
			Title: "Portfolio Site",
			Summary: `This site. A Go and Gin server rendering HTMX fragments, with the typed hero
	banner streamed over Server-Sent Events and a sqlite-backed contact inbox.`,
			Categories: []string{"web", "go"},
			Tags:       []string{"Go", "Gin", "HTMX", "SQLite"},
		},
		{
			Slug:  "typed-banner",
			Title: "Typed Banner",
			Summary: `The hero typing effect as a terminal program, built on Bubble Tea and
	Lip Gloss so the same phrases cycle in a shell.`,
			Categories: []string{"go", "tui"},
			Tags:       []string{"Go", "Bubble Tea", "Lip Gloss"},
		},
		{
			Slug:  "design-system",
			Title: "Design System",
			Summary: `A small component library with tokens for color, spacing and motion,
	documented with live examples and accessible defaults.`,
			Categories: []string{"ui", "web"},
			Tags:       []string{"CSS", "Figma", "Accessibility"},
		},
		{
			Slug:  "landing-pages",
			Title: "Landing Pages",
			Summary: `Responsive marketing pages with scroll reveals, animated counters and
	image pipelines tuned for Lighthouse scores above 95.`,
			Categories: []string{"web", "ui"},
			Tags:       []string{"HTML", "CSS", "JavaScript"},
		},
	}
)
