package comp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/specialistvlad/compflat/internal/ctxlog"
	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// rootSegment names the root of the composition tree when the main model has
// no id.
const rootSegment = "main"

// Result is the outcome of a flatten call.
type Result struct {
	// Document holds the flat model. It shares nothing with the input.
	Document *sbml.Document
	// Diagnostics are the non-fatal problems met on the way, in the order
	// they were found.
	Diagnostics []error
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithCycleGuard enables or disables the check for model definitions that
// instantiate themselves. It is on by default.
func WithCycleGuard(enabled bool) Option {
	return func(f *Flattener) {
		f.cycleGuard = enabled
	}
}

// Flattener turns a hierarchical document into a single flat model. A
// Flattener holds only configuration; every Flatten call builds its own
// state, so one Flattener may be used from several goroutines.
type Flattener struct {
	cycleGuard bool
}

// NewFlattener creates a flattener with the given options.
func NewFlattener(opts ...Option) *Flattener {
	f := &Flattener{cycleGuard: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten flattens doc with a default Flattener.
func Flatten(ctx context.Context, doc *sbml.Document) (*Result, error) {
	return NewFlattener().Flatten(ctx, doc)
}

// Flatten replaces the composition tree of doc with one model holding the
// content of every submodel instance. Instance content is prefixed with the
// instance path, deletions and replacements are applied and conversion
// factors are folded into the math.
//
// doc is never modified. When the composition extension is not enabled the
// result holds an untouched copy of doc and ErrMissingExtension as its only
// diagnostic.
func (f *Flattener) Flatten(ctx context.Context, doc *sbml.Document) (*Result, error) {
	if doc == nil {
		return nil, errors.New("flatten: document is nil")
	}
	start := time.Now()
	modelID := ""
	if doc.Model != nil {
		modelID = doc.Model.ID
	}
	ctx, span := tracer.Start(ctx, "comp.Flatten", trace.WithAttributes(attribute.String(attrModel, modelID)))
	defer span.End()
	logger := ctxlog.FromContext(ctx)

	work := doc.Clone()
	if work.Model == nil || !work.CompEnabled || !work.Model.CompEnabled {
		logger.Warn("Composition extension is not enabled, returning the document unchanged.", "model", modelID)
		measure(ctx, "flatten", modelID, true, time.Since(start), 1)
		return &Result{Document: work, Diagnostics: []error{ErrMissingExtension}}, nil
	}

	st := newFlattening(ctx, work, f.cycleGuard)
	flat, err := st.run()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		measure(ctx, "flatten", modelID, false, time.Since(start), 0)
		logger.Error("Flattening failed.", "model", modelID, "error", err)
		return nil, err
	}

	diags := append(st.diags, st.rw.Diagnostics()...)
	for _, d := range diags {
		logger.Warn("Flattening diagnostic.", "model", modelID, "diagnostic", d.Error())
	}
	span.SetAttributes(attribute.Int("diagnostics", len(diags)))
	measure(ctx, "flatten", modelID, true, time.Since(start), len(diags))
	logger.Info("Flattening complete.",
		"model", modelID,
		"compartments", len(flat.Model.Compartments),
		"species", len(flat.Model.Species),
		"parameters", len(flat.Model.Parameters),
		"reactions", len(flat.Model.Reactions),
		"diagnostics", len(diags),
	)
	return &Result{Document: flat, Diagnostics: diags}, nil
}

// addition is an initial assignment or rule that moves to another node of
// the tree. Its math is already in flat identifiers.
type addition struct {
	ia   *sbml.InitialAssignment
	rule *sbml.Rule
}

// flattening is the state of one Flatten call.
type flattening struct {
	ctx    context.Context
	logger *slog.Logger
	doc    *sbml.Document
	guard  bool

	registry *Registry
	prefixes map[string]string
	// nodes maps a path to the id of the model definition instantiated there.
	nodes map[string]string
	// visited holds the pre-flattening snapshot of every visited definition.
	visited map[string]*sbml.Model
	pending map[string][]addition
	merged  map[string]bool
	// chains maps a conversion factor chain to its materialized parameter.
	chains map[string]string
	// resolved lists the flat ids handed out during the traversal.
	resolved []resolution

	descending map[string]bool
	stack      []string

	acc    *sbml.Model
	rw     *Rewriter
	merger *Merger
	diags  []error
}

func newFlattening(ctx context.Context, doc *sbml.Document, guard bool) *flattening {
	return &flattening{
		ctx:        ctx,
		logger:     ctxlog.FromContext(ctx),
		doc:        doc,
		guard:      guard,
		registry:   NewRegistry(),
		prefixes:   make(map[string]string),
		nodes:      make(map[string]string),
		visited:    make(map[string]*sbml.Model),
		pending:    make(map[string][]addition),
		merged:     make(map[string]bool),
		chains:     make(map[string]string),
		descending: make(map[string]bool),
		acc:        sbml.NewModel(""),
		rw:         NewRewriter(),
		merger:     NewMerger(),
	}
}

func (f *flattening) run() (*sbml.Document, error) {
	root := f.doc.Model
	seg := root.ID
	if seg == "" {
		seg = rootSegment
	}
	rootClone, err := f.visit(root, pathkey.New(seg), nil, nil)
	if err != nil {
		return nil, err
	}

	// Entries below a path that was never instantiated name nothing.
	for _, path := range f.registry.Paths() {
		if _, ok := f.nodes[path.String()]; ok {
			continue
		}
		for _, e := range f.registry.Entries(path) {
			f.unresolvable(path, e.Kind, e.ID, "no submodel instance at this path")
		}
	}

	for _, fx := range f.rw.Fixups() {
		t := fx.Target
		id, ok := f.finalID(t.Origin, t.Kind, t.UnitID)
		if !ok {
			f.diags = append(f.diags, &UnresolvableReferenceError{
				Path:   t.Origin.String(),
				Kind:   t.Kind,
				Target: t.UnitID,
				Reason: "replacing unit definition was deleted",
			})
			*fx.Field = ""
			continue
		}
		*fx.Field = id
	}

	f.settle(seg)

	acc := f.acc
	acc.Base = rootClone.Base
	acc.StripDecorations()
	acc.CompEnabled = false
	acc.SubstanceUnits = rootClone.SubstanceUnits
	acc.TimeUnits = rootClone.TimeUnits
	acc.VolumeUnits = rootClone.VolumeUnits
	acc.AreaUnits = rootClone.AreaUnits
	acc.LengthUnits = rootClone.LengthUnits
	acc.ExtentUnits = rootClone.ExtentUnits
	acc.ConversionFactor = rootClone.ConversionFactor

	return &sbml.Document{
		LocationURI: f.doc.LocationURI,
		Model:       acc,
	}, nil
}

// visit flattens the instance of def at path into the accumulator and
// returns the rewritten copy of def. timeChain and extentChain are the flat
// ids of the conversion factors inherited from the ancestors.
func (f *flattening) visit(def *sbml.Model, path pathkey.Key, timeChain, extentChain []string) (*sbml.Model, error) {
	if f.guard && f.descending[def.ID] {
		chain := append(append([]string(nil), f.stack...), def.ID)
		return nil, &CyclicCompositionError{Chain: chain}
	}
	f.descending[def.ID] = true
	f.stack = append(f.stack, def.ID)
	defer func() {
		delete(f.descending, def.ID)
		f.stack = f.stack[:len(f.stack)-1]
	}()

	if _, ok := f.visited[def.ID]; !ok {
		f.visited[def.ID] = def.Clone()
	}
	f.nodes[path.String()] = def.ID
	m := def.Clone()

	f.registerReplacedElements(m, path)

	prefix := ""
	if !path.IsRoot() {
		prefix = ComputePrefix(m, path)
	}
	f.prefixes[path.String()] = prefix
	f.logger.Debug("Visiting composition node.", "path", path.String(), "prefix", prefix, "model", def.ID)

	for _, sm := range m.Submodels {
		child := path.Push(sm.ID)
		f.registerDeletions(child, sm)
		childDef := f.doc.FindModel(sm.ModelRef)
		if childDef == nil {
			return nil, &UnknownModelError{Submodel: sm.ID, ModelRef: sm.ModelRef}
		}
		tc := f.extendChain(path, timeChain, sm.TimeConversionFactor)
		ec := f.extendChain(path, extentChain, sm.ExtentConversionFactor)
		if _, err := f.visit(childDef, child, tc, ec); err != nil {
			return nil, err
		}
	}

	f.registerReplacedBy(m, path)

	repl := NewReplacements(path)
	migrations := f.applyEntries(m, path, repl)

	for _, add := range f.pending[path.String()] {
		if add.ia != nil {
			m.InitialAssignments = append(m.InitialAssignments, add.ia)
			repl.Premapped[add.ia] = struct{}{}
		}
		if add.rule != nil {
			m.Rules = append(m.Rules, add.rule)
			repl.Premapped[add.rule] = struct{}{}
		}
	}
	delete(f.pending, path.String())

	applyPrefix(m, prefix)

	tf, err := f.chainNode(timeChain)
	if err != nil {
		return nil, err
	}
	ef, err := f.chainNode(extentChain)
	if err != nil {
		return nil, err
	}
	f.rw.Rewrite(m, prefix, repl, tf, ef)

	if err := f.migrate(m, migrations); err != nil {
		return nil, err
	}

	if err := f.merger.Merge(f.acc, m); err != nil {
		return nil, fmt.Errorf("failed to merge %q: %w", path.String(), err)
	}
	f.merged[path.String()] = true
	return m, nil
}

// extendChain returns chain followed by the flat id of the conversion factor
// parameter factor of the node at path. An empty factor leaves the chain as
// it is.
func (f *flattening) extendChain(path pathkey.Key, chain []string, factor string) []string {
	if factor == "" {
		return chain
	}
	id, ok := f.resolveID(path, KindID, factor)
	if !ok {
		f.diags = append(f.diags, &UnresolvableReferenceError{
			Path:   path.String(),
			Kind:   KindID,
			Target: factor,
			Reason: "conversion factor parameter was deleted",
		})
		return chain
	}
	out := make([]string, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, id)
}

// finalID follows the registry from the element (kind, id) of the node at
// path to the element that survives flattening and returns its flat id. ok
// is false when the chain ends in a deletion or cannot be resolved.
func (f *flattening) finalID(path pathkey.Key, kind RefKind, id string) (string, bool) {
	for hops := 0; hops < maxResolveHops; hops++ {
		rec, found := f.lookupAliases(path, kind, id)
		if found {
			if rec == nil {
				return "", false
			}
			path, kind, id = rec.Origin, rec.TargetKind, rec.TargetID
			continue
		}

		snap := f.snapshot(path)
		switch kind {
		case KindPort:
			if snap == nil {
				return "", false
			}
			p := snap.Port(id)
			if p == nil {
				return "", false
			}
			var leaf *sbml.Ref
			path, leaf = resolveChain(path, &p.Ref)
			var ok bool
			if id, kind, ok = SelectRef(*leaf); !ok {
				return "", false
			}
			continue
		case KindMetaID:
			if snap == nil {
				return "", false
			}
			e := snap.FindByMetaID(id)
			if e == nil {
				return "", false
			}
			if e.Common().ID == "" {
				return f.prefixes[path.String()] + id, true
			}
			kind, id = KindID, e.Common().ID
			if _, unit := e.(*sbml.UnitDefinition); unit {
				kind = KindUnit
			}
			continue
		}
		return f.prefixes[path.String()] + id, true
	}
	return "", false
}

// resolution is a flat id handed out while the tree was being walked.
// Replaced-by declarations registered later may move its target.
type resolution struct {
	path pathkey.Key
	kind RefKind
	id   string
	flat string
}

// resolveID is finalID for ids written into the output. Its answer is
// checked again by settle once the whole tree is merged.
func (f *flattening) resolveID(path pathkey.Key, kind RefKind, id string) (string, bool) {
	flat, ok := f.finalID(path, kind, id)
	if ok {
		f.resolved = append(f.resolved, resolution{path: path, kind: kind, id: id, flat: flat})
	}
	return flat, ok
}

// settle resolves every id handed out during the traversal against the
// complete registry and renames the references whose target moved.
func (f *flattening) settle(root string) {
	repl := NewReplacements(pathkey.New(root))
	seen := make(map[string]bool)
	for _, r := range f.resolved {
		key := r.path.String() + "\x00" + r.kind.String() + "\x00" + r.id
		if seen[key] {
			continue
		}
		seen[key] = true
		flat, ok := f.finalID(r.path, r.kind, r.id)
		if !ok {
			f.unresolvable(r.path, r.kind, r.id, "replacing element was removed after it was referenced")
			continue
		}
		if flat != r.flat {
			repl.IDs[r.flat] = Substitution{ID: flat}
		}
	}
	if len(repl.IDs) == 0 {
		return
	}
	f.logger.Debug("Renaming references to late replacements.", "count", len(repl.IDs))
	NewRewriter().Rewrite(f.acc, "", repl, nil, nil)
}

// maxResolveHops bounds finalID on registries that loop.
const maxResolveHops = 256

// lookupAliases looks (kind, id) up at path, then the same element under
// its metaId and under every port that designates it. A replacement under
// any of these keys wins over a deletion.
func (f *flattening) lookupAliases(path pathkey.Key, kind RefKind, id string) (*Record, bool) {
	rec, found := f.registry.Lookup(path, kind, id)
	if rec != nil {
		return rec, true
	}
	// A deletion under one key gives way to a replacement under another.
	if alias, ok := f.lookupOtherKeys(path, kind, id); ok && (alias != nil || !found) {
		return alias, true
	}
	return nil, found
}

// lookupOtherKeys looks up the element (kind, id) of path under its metaId
// and under every port that designates it.
func (f *flattening) lookupOtherKeys(path pathkey.Key, kind RefKind, id string) (*Record, bool) {
	if kind != KindID && kind != KindUnit {
		return nil, false
	}
	snap := f.snapshot(path)
	if snap == nil {
		return nil, false
	}
	var e sbml.Element
	if kind == KindUnit {
		if ud := snap.UnitDefinition(id); ud != nil {
			e = ud
		}
	} else {
		e = snap.FindBySID(id)
	}
	deleted := false
	if e != nil && e.Common().MetaID != "" {
		if rec, found := f.registry.Lookup(path, KindMetaID, e.Common().MetaID); rec != nil {
			return rec, true
		} else if found {
			deleted = true
		}
	}
	for _, p := range snap.Ports {
		if p.Ref.Nested != nil {
			continue
		}
		if target, k, ok := SelectRef(p.Ref); ok && target == id && (k == kind || (k == KindID && kind == KindUnit)) {
			if rec, found := f.registry.Lookup(path, KindPort, p.ID); rec != nil {
				return rec, true
			} else if found {
				deleted = true
			}
		}
	}
	return nil, deleted
}

func (f *flattening) snapshot(path pathkey.Key) *sbml.Model {
	id, ok := f.nodes[path.String()]
	if !ok {
		return nil
	}
	return f.visited[id]
}

func (f *flattening) unresolvable(path pathkey.Key, kind RefKind, target, reason string) {
	f.diags = append(f.diags, &UnresolvableReferenceError{
		Path:   path.String(),
		Kind:   kind,
		Target: target,
		Reason: reason,
	})
}
