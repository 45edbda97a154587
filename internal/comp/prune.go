package comp

import (
	"slices"
	"strings"

	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// prune drops the constructs of m that can no longer be evaluated because
// they refer to a deleted element. Every drop is recorded as a
// DanglingReferenceError.
func (s *scope) prune(m *sbml.Model) {
	if len(s.repl.Deleted) == 0 {
		return
	}
	deleted := s.repl.Deleted

	if _, ok := deleted[m.ConversionFactor]; ok {
		s.dangling(m, m.ConversionFactor)
		m.ConversionFactor = ""
	}

	for _, ia := range slices.Clone(m.InitialAssignments) {
		if ref, ok := s.deadAssignment(ia, ia.Symbol, ia.Math); ok {
			m.Remove(ia)
			s.dangling(ia, ref)
		}
	}
	for _, r := range slices.Clone(m.Rules) {
		if ref, ok := s.deadAssignment(r, r.Variable, r.Math); ok {
			m.Remove(r)
			s.dangling(r, ref)
		}
	}
	for _, c := range slices.Clone(m.Constraints) {
		if ref, ok := s.mentionsDeleted(c.Math, nil); ok {
			m.Remove(c)
			s.dangling(c, ref)
		}
	}

	for _, sp := range m.Species {
		if _, ok := deleted[sp.Compartment]; ok {
			s.dangling(sp, sp.Compartment)
			sp.Compartment = ""
		}
		if _, ok := deleted[sp.ConversionFactor]; ok {
			s.dangling(sp, sp.ConversionFactor)
			sp.ConversionFactor = ""
		}
	}

	for _, r := range m.Reactions {
		if _, ok := deleted[r.Compartment]; ok {
			s.dangling(r, r.Compartment)
			r.Compartment = ""
		}
		for _, sr := range slices.Concat(r.Reactants, r.Products) {
			if _, premapped := s.repl.Premapped[sr]; premapped {
				continue
			}
			if _, ok := deleted[sr.Species]; ok {
				m.Remove(sr)
				s.dangling(sr, sr.Species)
			}
		}
		for _, mr := range slices.Clone(r.Modifiers) {
			if _, ok := deleted[mr.Species]; ok {
				m.Remove(mr)
				s.dangling(mr, mr.Species)
			}
		}
		if kl := r.KineticLaw; kl != nil {
			locals := make(map[string]struct{}, len(kl.LocalParameters))
			for _, lp := range kl.LocalParameters {
				locals[strings.TrimPrefix(lp.ID, s.prefix)] = struct{}{}
			}
			if ref, ok := s.mentionsDeleted(kl.Math, locals); ok {
				r.KineticLaw = nil
				s.dangling(kl, ref)
			}
		}
	}

	for _, ev := range slices.Clone(m.Events) {
		if ref, ok := s.deadEvent(ev); ok {
			m.Remove(ev)
			s.dangling(ev, ref)
			continue
		}
		for _, ea := range slices.Clone(ev.Assignments) {
			if ref, ok := s.deadAssignment(ea, ea.Variable, ea.Math); ok {
				m.Remove(ea)
				s.dangling(ea, ref)
			}
		}
	}
}

// deadAssignment reports the deleted identifier that invalidates an
// assignment of math to variable.
func (s *scope) deadAssignment(e sbml.Element, variable string, math *formula.Node) (string, bool) {
	if _, ok := s.repl.Deleted[variable]; ok && variable != "" {
		return variable, true
	}
	if _, premapped := s.repl.Premapped[e]; premapped {
		return "", false
	}
	return s.mentionsDeleted(math, nil)
}

func (s *scope) deadEvent(ev *sbml.Event) (string, bool) {
	if ev.Trigger != nil {
		if ref, ok := s.mentionsDeleted(ev.Trigger.Math, nil); ok {
			return ref, true
		}
	}
	if ev.Delay != nil {
		if ref, ok := s.mentionsDeleted(ev.Delay.Math, nil); ok {
			return ref, true
		}
	}
	if ev.Priority != nil {
		if ref, ok := s.mentionsDeleted(ev.Priority.Math, nil); ok {
			return ref, true
		}
	}
	return "", false
}

// mentionsDeleted returns the first deleted identifier n refers to, either
// as a name or as a called function. Names in locals shadow model ids.
func (s *scope) mentionsDeleted(n *formula.Node, locals map[string]struct{}) (string, bool) {
	var hit string
	formula.Walk(n, func(x *formula.Node) bool {
		if hit != "" {
			return false
		}
		switch x.Kind {
		case formula.KindName:
			if _, local := locals[x.Name]; local {
				return true
			}
			if _, ok := s.repl.Deleted[x.Name]; ok {
				hit = x.Name
			}
		case formula.KindCall:
			if _, ok := s.repl.Deleted[x.Name]; ok {
				hit = x.Name
			}
		}
		return hit == ""
	})
	return hit, hit != ""
}

func (s *scope) dangling(e sbml.Element, ref string) {
	s.rw.diags = append(s.rw.diags, &DanglingReferenceError{
		Path:    s.repl.Path.String(),
		Element: e.TypeName(),
		ID:      e.Common().ID,
		Ref:     ref,
	})
}
