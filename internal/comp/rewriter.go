package comp

import (
	"strings"

	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// Substitution is the resolved fate of a replaced identifier: the id it has
// in the flat model and, when set, the flat id of its conversion factor.
type Substitution struct {
	ID     string
	Factor string
}

// UnitTarget names the unit definition that replaces a local one. Its flat
// id is only final once the whole tree is merged.
type UnitTarget struct {
	Origin  pathkey.Key
	ModelID string
	Kind    RefKind
	UnitID  string
}

// UnitFixup is a unit attribute waiting for the flat id of its target.
type UnitFixup struct {
	Field  *string
	Target UnitTarget
}

// Replacements describes, for one composition-tree node, what happens to the
// identifiers of the node's model. Keys are local (unprefixed) identifiers.
type Replacements struct {
	Path         pathkey.Key
	IDs          map[string]Substitution
	Units        map[string]UnitTarget
	Deleted      map[string]struct{}
	DeletedUnits map[string]struct{}
	// Premapped holds spliced-in assignments and rules whose math is already
	// written in flat identifiers, and species references whose species was
	// copied from a donor in flat form.
	Premapped map[sbml.Element]struct{}
}

// NewReplacements returns an empty set for the node at path.
func NewReplacements(path pathkey.Key) *Replacements {
	return &Replacements{
		Path:         path,
		IDs:          make(map[string]Substitution),
		Units:        make(map[string]UnitTarget),
		Deleted:      make(map[string]struct{}),
		DeletedUnits: make(map[string]struct{}),
		Premapped:    make(map[sbml.Element]struct{}),
	}
}

// mathConstants are bare names with a fixed meaning in math. They are left
// alone unless the model declares an element of the same name.
var mathConstants = map[string]struct{}{
	"pi": {}, "exponentiale": {}, "avogadro": {},
	"INF": {}, "NaN": {}, "infinity": {}, "notanumber": {},
}

// Rewriter rewrites the references of a prefixed model into flat
// identifiers. It collects the diagnostics and deferred unit fixups of every
// model it rewrites.
type Rewriter struct {
	diags  []error
	fixups []UnitFixup
}

// NewRewriter creates a rewriter with no pending state.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Diagnostics returns the non-fatal problems found so far.
func (rw *Rewriter) Diagnostics() []error { return rw.diags }

// Fixups returns the unit attributes whose final value is still pending.
func (rw *Rewriter) Fixups() []UnitFixup { return rw.fixups }

// scope is the rewriting context of one model.
type scope struct {
	rw       *Rewriter
	prefix   string
	repl     *Replacements
	time     *formula.Node
	extent   *formula.Node
	declared map[string]struct{}
	funcs    map[string]struct{}
}

// Rewrite maps every reference in model, whose element ids already carry
// prefix, to its flat identifier. Replaced identifiers become their
// substitution, every other identifier gets prefix. timeFactor and
// extentFactor, when not nil, scale time, delays, rate rules and kinetic
// laws. Constructs that refer to deleted elements are dropped first.
func (rw *Rewriter) Rewrite(model *sbml.Model, prefix string, repl *Replacements, timeFactor, extentFactor *formula.Node) {
	if repl == nil {
		repl = NewReplacements(pathkey.New())
	}
	s := &scope{
		rw:       rw,
		prefix:   prefix,
		repl:     repl,
		time:     timeFactor,
		extent:   extentFactor,
		declared: make(map[string]struct{}),
		funcs:    make(map[string]struct{}),
	}
	model.Walk(func(e sbml.Element) bool {
		if id := e.Common().ID; id != "" && sbml.InSIDNamespace(e) {
			s.declared[strings.TrimPrefix(id, prefix)] = struct{}{}
		}
		return true
	})
	for _, fd := range model.FunctionDefinitions {
		s.funcs[strings.TrimPrefix(fd.ID, prefix)] = struct{}{}
	}
	for id := range repl.IDs {
		s.declared[id] = struct{}{}
	}
	for id := range repl.Deleted {
		s.declared[id] = struct{}{}
	}

	s.prune(model)
	s.rewriteModel(model)
}

func (s *scope) rewriteModel(m *sbml.Model) {
	for _, u := range []*string{&m.SubstanceUnits, &m.TimeUnits, &m.VolumeUnits, &m.AreaUnits, &m.LengthUnits, &m.ExtentUnits} {
		s.unit(u, m)
	}
	if m.ConversionFactor != "" {
		m.ConversionFactor, _ = s.id(m.ConversionFactor)
	}

	for _, fd := range m.FunctionDefinitions {
		fd.Body = s.functionBody(fd.Body)
	}
	for _, c := range m.Compartments {
		s.unit(&c.Units, c)
	}
	for _, sp := range m.Species {
		if sp.Compartment != "" {
			sp.Compartment, _ = s.id(sp.Compartment)
		}
		if sp.ConversionFactor != "" {
			sp.ConversionFactor, _ = s.id(sp.ConversionFactor)
		}
		s.unit(&sp.SubstanceUnits, sp)
	}
	for _, p := range m.Parameters {
		s.unit(&p.Units, p)
	}
	for _, ia := range m.InitialAssignments {
		_, premapped := s.repl.Premapped[ia]
		if !premapped {
			ia.Math = s.math(ia.Math, nil)
		}
		ia.Symbol = s.variable(ia.Symbol, ia.Math)
	}
	for _, r := range m.Rules {
		_, premapped := s.repl.Premapped[r]
		if !premapped {
			r.Math = s.math(r.Math, nil)
		}
		if r.Kind != sbml.AlgebraicRule {
			r.Variable = s.variable(r.Variable, r.Math)
		}
		if r.Kind == sbml.RateRule && s.time != nil && !premapped && r.Math != nil {
			r.Math.DivideBy(s.time.Clone())
		}
	}
	for _, c := range m.Constraints {
		c.Math = s.math(c.Math, nil)
	}
	for _, r := range m.Reactions {
		s.rewriteReaction(r)
	}
	for _, ev := range m.Events {
		s.rewriteEvent(ev)
	}
}

func (s *scope) rewriteReaction(r *sbml.Reaction) {
	if r.Compartment != "" {
		r.Compartment, _ = s.id(r.Compartment)
	}
	for _, sr := range r.Reactants {
		s.speciesRef(sr)
	}
	for _, sr := range r.Products {
		s.speciesRef(sr)
	}
	for _, mr := range r.Modifiers {
		mr.Species, _ = s.id(mr.Species)
	}
	kl := r.KineticLaw
	if kl == nil {
		return
	}
	locals := make(map[string]struct{}, len(kl.LocalParameters))
	for _, lp := range kl.LocalParameters {
		locals[strings.TrimPrefix(lp.ID, s.prefix)] = struct{}{}
		s.unit(&lp.Units, lp)
	}
	kl.Math = s.math(kl.Math, locals)
	if kl.Math == nil {
		return
	}
	switch {
	case s.extent != nil && s.time != nil:
		kl.Math.MultiplyWith(formula.Op(formula.KindDivide, s.extent.Clone(), s.time.Clone()))
	case s.extent != nil:
		kl.Math.MultiplyWith(s.extent.Clone())
	case s.time != nil:
		kl.Math.MultiplyWith(formula.Op(formula.KindDivide, formula.Number(1), s.time.Clone()))
	}
}

func (s *scope) speciesRef(sr *sbml.SpeciesReference) {
	if _, ok := s.repl.Premapped[sr]; ok {
		return
	}
	sr.Species, _ = s.id(sr.Species)
}

func (s *scope) rewriteEvent(ev *sbml.Event) {
	if ev.Trigger != nil {
		ev.Trigger.Math = s.math(ev.Trigger.Math, nil)
	}
	if ev.Delay != nil {
		ev.Delay.Math = s.math(ev.Delay.Math, nil)
		if s.time != nil && ev.Delay.Math != nil {
			ev.Delay.Math.MultiplyWith(s.time.Clone())
		}
	}
	if ev.Priority != nil {
		ev.Priority.Math = s.math(ev.Priority.Math, nil)
	}
	for _, ea := range ev.Assignments {
		ea.Math = s.math(ea.Math, nil)
		ea.Variable = s.variable(ea.Variable, ea.Math)
	}
}

// id maps a local identifier to its flat form and the flat id of the
// conversion factor attached to it, if any.
func (s *scope) id(name string) (string, string) {
	if sub, ok := s.repl.IDs[name]; ok {
		return sub.ID, sub.Factor
	}
	return s.prefix + name, ""
}

// variable maps the subject of an assignment. When the subject was replaced
// with a conversion factor, math is scaled by it.
func (s *scope) variable(name string, math *formula.Node) string {
	if name == "" {
		return ""
	}
	id, factor := s.id(name)
	if factor != "" && math != nil {
		math.MultiplyWith(formula.Name(factor))
	}
	return id
}

// math rewrites n and returns the new root. Names listed in locals are
// kinetic-law local parameters: they are prefixed and never substituted.
func (s *scope) math(n *formula.Node, locals map[string]struct{}) *formula.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case formula.KindName:
		return s.name(n.Name, locals)
	case formula.KindTime:
		if s.time != nil {
			n.DivideBy(s.time.Clone())
		}
		return n
	}
	for i, c := range n.Children {
		n.ReplaceChild(i, s.math(c, locals))
	}
	switch n.Kind {
	case formula.KindCall:
		n.Name = s.function(n.Name)
	case formula.KindDelay:
		if s.time != nil {
			n.Child(1).MultiplyWith(s.time.Clone())
		}
	}
	return n
}

func (s *scope) name(name string, locals map[string]struct{}) *formula.Node {
	if _, ok := locals[name]; ok {
		return formula.Name(s.prefix + name)
	}
	if _, constant := mathConstants[name]; constant {
		if _, ok := s.declared[name]; !ok {
			return formula.Name(name)
		}
	}
	id, factor := s.id(name)
	out := formula.Name(id)
	if factor != "" {
		out.DivideBy(formula.Name(factor))
	}
	return out
}

func (s *scope) function(name string) string {
	if sub, ok := s.repl.IDs[name]; ok {
		return sub.ID
	}
	if _, ok := s.funcs[name]; ok {
		return s.prefix + name
	}
	return name
}

// functionBody renames calls to other user functions. Bare names in a body
// are lambda arguments and stay as they are.
func (s *scope) functionBody(n *formula.Node) *formula.Node {
	formula.Walk(n, func(x *formula.Node) bool {
		if x.Kind == formula.KindCall {
			x.Name = s.function(x.Name)
		}
		return true
	})
	return n
}

// unit maps a unit attribute. Replaced units are resolved after the merge,
// deleted ones are cleared.
func (s *scope) unit(field *string, owner sbml.Element) {
	u := *field
	if u == "" || sbml.IsPredefinedUnit(u) {
		return
	}
	if t, ok := s.repl.Units[u]; ok {
		s.rw.fixups = append(s.rw.fixups, UnitFixup{Field: field, Target: t})
		return
	}
	if _, ok := s.repl.DeletedUnits[u]; ok {
		*field = ""
		s.rw.diags = append(s.rw.diags, &DanglingReferenceError{
			Path:    s.repl.Path.String(),
			Element: owner.TypeName() + " units",
			ID:      owner.Common().ID,
			Ref:     u,
		})
		return
	}
	*field = s.prefix + u
}
