package catalog

import "strings"

// Kind partitions catalog items into the three selection groups the
// experience builder works with.
type Kind string

const (
	KindPackage     Kind = "package"
	KindEnhancement Kind = "enhancement"
	KindMotion      Kind = "motion"
)

// TagPrefix marks the legacy kind tag embedded in the theme_keywords column.
// Older rows encode their kind as "package_type:<kind>|<free text>" because
// the original schema had no dedicated kind column.
const TagPrefix = "package_type:"

// Classify decodes a legacy theme tag into a structured kind plus the
// residual free-text keywords. It never fails: absent or malformed input
// degrades to KindPackage with the trimmed input as keywords.
func Classify(encodedTag string) (Kind, string) {
	trimmed := strings.TrimSpace(encodedTag)
	if trimmed == "" {
		return KindPackage, ""
	}

	idx := strings.Index(trimmed, TagPrefix)
	if idx < 0 {
		return KindPackage, trimmed
	}

	rest := trimmed[idx+len(TagPrefix):]
	rawKind := rest
	keywords := trimmed[:idx]
	if pipe := strings.Index(rest, "|"); pipe >= 0 {
		rawKind = rest[:pipe]
		keywords += rest[pipe+1:]
	}

	return normalizeKind(rawKind), strings.TrimSpace(keywords)
}

// Encode builds the legacy tag representation for a kind plus free-text
// keywords. Kept as a compatibility shim for rows written before the kind
// column existed.
func Encode(kind Kind, keywords string) string {
	return TagPrefix + string(kind) + "|" + keywords
}

func normalizeKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(KindEnhancement):
		return KindEnhancement
	case string(KindMotion):
		return KindMotion
	case "experience": // legacy synonym
		return KindPackage
	default:
		return KindPackage
	}
}

// ValidKind reports whether s names one of the three catalog kinds.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindPackage, KindEnhancement, KindMotion:
		return true
	default:
		return false
	}
}
