package theme

import (
	"strings"
)

const baseMarker = "Base CSS"

// ParseMetadata reads "Key: value" lines from a CSS comment block.
func ParseMetadata(comment string) Metadata {
	meta := Metadata{Accent: "#0f172a"}

	body := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(comment), "/*"), "*/")
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Template":
			meta.Template = value
		case "Scheme":
			meta.Scheme = value
		case "Accent":
			meta.Accent = value
		case "Display":
			meta.Display = value
		}
	}
	return meta
}

type commentSpan struct {
	start, end int // end is just past "*/"
}

func comments(content string) []commentSpan {
	var spans []commentSpan
	pos := 0
	for {
		start := strings.Index(content[pos:], "/*")
		if start == -1 {
			return spans
		}
		start += pos
		end := strings.Index(content[start:], "*/")
		if end == -1 {
			return spans
		}
		end += start + 2
		spans = append(spans, commentSpan{start, end})
		pos = end
	}
}

// ParseStylesheet splits a CSS template into its schemes and base rules.
// A scheme is introduced by a comment carrying Template and Scheme keys and
// runs until the next comment. Everything after a "/* Base CSS */" comment is
// the base. Rules outside a scheme are wrapped in the scheme's data-scheme
// selector when they do not already carry it.
func ParseStylesheet(content string) (name string, schemes []Scheme, baseCSS string) {
	spans := comments(content)

	for i, sp := range spans {
		comment := content[sp.start:sp.end]
		next := len(content)
		if i+1 < len(spans) {
			next = spans[i+1].start
		}

		if strings.Contains(comment, baseMarker) {
			baseCSS = strings.TrimSpace(content[sp.end:])
			break
		}

		meta := ParseMetadata(comment)
		if meta.Template == "" || meta.Scheme == "" {
			continue
		}
		if name == "" {
			name = meta.Template
		}

		css := strings.TrimSpace(content[sp.end:next])
		selector := `[data-scheme="` + meta.Scheme + `"]`
		if !strings.HasPrefix(css, selector) {
			css = selector + " " + css
		}

		dup := false
		for _, s := range schemes {
			if s.Name == meta.Scheme {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		schemes = append(schemes, Scheme{
			Name:    meta.Scheme,
			Accent:  meta.Accent,
			Display: meta.Display,
			CSS:     css,
		})
	}

	return name, schemes, baseCSS
}
