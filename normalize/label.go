package normalize

import (
	"regexp"
	"strings"
)

var (
	tagNameRe    = regexp.MustCompile(`(?i)^<\s*([a-z0-9]+)`)
	attrRe       = regexp.MustCompile(`(?i)([a-zA-Z-]+)\s*=\s*"([^"]*)"`)
	tagStripRe   = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// genericTags are selector-chain segments too generic to identify an
// element on their own.
var genericTags = map[string]bool{
	"html": true, "body": true, "div": true, "span": true, "section": true, "article": true,
}

// roleForTag assigns a coarse role label by tag/type.
func roleForTag(tag string, attrs map[string]string) string {
	tag = strings.ToLower(tag)
	switch tag {
	case "button":
		return "Button"
	case "a":
		return "Link"
	case "input":
		switch strings.ToLower(attrs["type"]) {
		case "button", "submit", "reset":
			return "Button"
		default:
			return "Form field"
		}
	case "textarea", "select":
		return "Form field"
	default:
		return "Element"
	}
}

// parseOutermostTag extracts the tag name and attribute map from the
// outermost element in an HTML snippet.
func parseOutermostTag(html string) (tag string, attrs map[string]string) {
	attrs = map[string]string{}
	m := tagNameRe.FindStringSubmatch(html)
	if m == nil {
		return "", attrs
	}
	tag = m[1]

	end := strings.Index(html, ">")
	if end < 0 {
		end = len(html)
	}
	openTag := html[:end]

	for _, am := range attrRe.FindAllStringSubmatch(openTag, -1) {
		attrs[strings.ToLower(am[1])] = am[2]
	}
	return tag, attrs
}

func visibleText(html string) string {
	stripped := tagStripRe.ReplaceAllString(html, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(stripped, " "))
}

// ElementLabel derives a human-readable label from an HTML snippet:
// "<Role> \"<name>\"" where name comes from aria-label, else alt, else
// placeholder, else title, else visible text.
func ElementLabel(html string) string {
	tag, attrs := parseOutermostTag(html)
	role := roleForTag(tag, attrs)

	name := attrs["aria-label"]
	if name == "" {
		name = attrs["alt"]
	}
	if name == "" {
		name = attrs["placeholder"]
	}
	if name == "" {
		name = attrs["title"]
	}
	if name == "" {
		name = visibleText(html)
	}
	name = whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " ")

	return role + " \"" + name + "\""
}

// FriendlySelector derives a stable, readable selector: walk the engine's
// target chain from the deepest entry backwards, preferring a segment with
// an #id or a non-generic class-prefixed tag. Falls back to parsing the
// snippet for tag#id/tag.class, then to the raw last target entry
// truncated to 80 chars.
func FriendlySelector(target []string, html string) string {
	for i := len(target) - 1; i >= 0; i-- {
		seg := strings.TrimSpace(target[i])
		if seg == "" {
			continue
		}
		if strings.Contains(seg, "#") {
			return seg
		}
		tag := seg
		if idx := strings.IndexAny(seg, ".#["); idx >= 0 {
			tag = seg[:idx]
		}
		if tag != "" && !genericTags[strings.ToLower(tag)] {
			return seg
		}
	}

	if tag, attrs := parseOutermostTag(html); tag != "" {
		if id, ok := attrs["id"]; ok && id != "" {
			return tag + "#" + id
		}
		if class, ok := attrs["class"]; ok && class != "" {
			classes := strings.Fields(class)
			if len(classes) > 0 {
				return tag + "." + strings.Join(classes, ".")
			}
		}
	}

	if len(target) > 0 {
		return truncate(target[len(target)-1], 80)
	}
	return truncate(html, 80)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
