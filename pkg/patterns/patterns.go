// Package patterns implements the semantic pattern detector: a registry of
// named domain idioms matched against function names and file text by
// keyword containment and name globs.
package patterns

import (
	"regexp"
	"strings"

	"github.com/solstat/solstat/pkg/metrics"
)

// Definition describes one detectable domain idiom.
type Definition struct {
	ID          string            `json:"id"          yaml:"id"`
	Name        string            `json:"name"        yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Risk        metrics.RiskLevel `json:"risk"        yaml:"risk"`
	Keywords    []string          `json:"keywords"    yaml:"keywords"`
	NameGlobs   []string          `json:"name_globs"  yaml:"name_globs"`
}

// Registry is a read-only table of pattern definitions. It is constructed
// once and never mutated afterwards, so detectors may share it freely
// across goroutines.
type Registry struct {
	defs []Definition
}

// NewRegistry builds a registry from the given definitions. Order is
// preserved; later duplicates of an ID are dropped.
func NewRegistry(defs []Definition) *Registry {
	seen := make(map[string]struct{}, len(defs))
	kept := make([]Definition, 0, len(defs))

	for _, def := range defs {
		if _, dup := seen[def.ID]; dup {
			continue
		}

		seen[def.ID] = struct{}{}
		kept = append(kept, def)
	}

	return &Registry{defs: kept}
}

// Definitions returns the registered definitions in stable order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, len(r.defs))
	copy(defs, r.defs)

	return defs
}

// Definition returns the definition with the given ID.
func (r *Registry) Definition(id string) (Definition, bool) {
	for _, def := range r.defs {
		if def.ID == id {
			return def, true
		}
	}

	return Definition{}, false
}

// MatchName returns the IDs of patterns whose keyword set or name-glob set
// matches the function name. Results follow registry order and carry no
// duplicates.
func (r *Registry) MatchName(name string) []string {
	matched := make([]string, 0)
	lower := strings.ToLower(name)

	for _, def := range r.defs {
		if matchKeywords(lower, def.Keywords) || matchGlobs(name, def.NameGlobs) {
			matched = append(matched, def.ID)
		}
	}

	return matched
}

// MatchText returns the IDs of patterns whose keywords appear anywhere in
// the text. Glob patterns apply to function names only and are ignored
// here.
func (r *Registry) MatchText(text string) []string {
	matched := make([]string, 0)
	lower := strings.ToLower(text)

	for _, def := range r.defs {
		if matchKeywords(lower, def.Keywords) {
			matched = append(matched, def.ID)
		}
	}

	return matched
}

func matchKeywords(lowerText string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}

		if strings.Contains(lowerText, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}

func matchGlobs(name string, globs []string) bool {
	for _, glob := range globs {
		if matchGlob(name, glob) {
			return true
		}
	}

	return false
}

// matchGlob matches name against a glob with `*` wildcards. The common
// single-star case is a prefix/suffix check; multi-star patterns fall back
// to a regexp translation.
func matchGlob(name, glob string) bool {
	if glob == "" {
		return false
	}

	switch strings.Count(glob, "*") {
	case 0:
		return name == glob
	case 1:
		prefix, suffix, _ := strings.Cut(glob, "*")

		return len(name) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix)
	default:
		parts := strings.Split(glob, "*")
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}

		re, err := regexp.Compile("^" + strings.Join(parts, ".*") + "$")
		if err != nil {
			return false
		}

		return re.MatchString(name)
	}
}
