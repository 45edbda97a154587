package comp

import (
	"strings"

	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
)

const (
	// PrefixDelimiter follows every submodel name in a prefix.
	PrefixDelimiter = "__"
	// prefixPad is appended to a prefix that collides with an existing id.
	prefixPad = "_"
)

// ComputePrefix derives the identifier prefix for the node at path, whose
// model is model. The root (a path of at most one segment) gets no prefix.
// The result is never a prefix of an id or metaId already present in model.
func ComputePrefix(model *sbml.Model, path pathkey.Key) string {
	if path.IsRoot() {
		return ""
	}
	var sb strings.Builder
	for _, seg := range path.Segments()[1:] {
		sb.WriteString(seg)
		sb.WriteString(PrefixDelimiter)
	}
	prefix := sb.String()

	existing := collectIdentifiers(model)
	for collides(existing, prefix) {
		prefix += prefixPad
	}
	return prefix
}

func collectIdentifiers(model *sbml.Model) []string {
	var out []string
	model.WalkAll(func(e sbml.Element) bool {
		b := e.Common()
		if b.ID != "" {
			out = append(out, b.ID)
		}
		if b.MetaID != "" {
			out = append(out, b.MetaID)
		}
		return true
	})
	return out
}

func collides(ids []string, prefix string) bool {
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// applyPrefix prepends prefix to the id and metaId of every content element
// of model.
func applyPrefix(model *sbml.Model, prefix string) {
	if prefix == "" {
		return
	}
	model.Walk(func(e sbml.Element) bool {
		b := e.Common()
		if b.ID != "" {
			b.ID = prefix + b.ID
		}
		if b.MetaID != "" {
			b.MetaID = prefix + b.MetaID
		}
		return true
	})
}
