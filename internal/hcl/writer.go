package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/specialistvlad/compflat/internal/sbml"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders doc in the same block grammar Decode reads. Attribute and
// block order is fixed, so equal documents encode to equal bytes.
func (c *Codec) Encode(doc *sbml.Document) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	first := true
	section := func() {
		if !first {
			root.AppendNewline()
		}
		first = false
	}

	if doc.Model != nil {
		section()
		if err := writeModel(root.AppendNewBlock("model", []string{doc.Model.ID}).Body(), doc.Model); err != nil {
			return nil, err
		}
	}
	for _, m := range doc.ModelDefinitions {
		section()
		if err := writeModel(root.AppendNewBlock("model_definition", []string{m.ID}).Body(), m); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.ExternalModelDefinitions {
		section()
		b := root.AppendNewBlock("external_model_definition", []string{e.ID}).Body()
		setString(b, "source", e.Source)
		setString(b, "model_ref", e.ModelRef)
		setString(b, "md5", e.MD5)
		writeBase(b, &e.Base, false)
	}
	return f.Bytes(), nil
}

func setString(b *hclwrite.Body, name, v string) {
	if v != "" {
		b.SetAttributeValue(name, cty.StringVal(v))
	}
}

func setFloat(b *hclwrite.Body, name string, v *float64) {
	if v != nil {
		b.SetAttributeValue(name, cty.NumberFloatVal(*v))
	}
}

func setBool(b *hclwrite.Body, name string, v *bool) {
	if v != nil {
		b.SetAttributeValue(name, cty.BoolVal(*v))
	}
}

// setMath writes n as a native expression. The rendered text is re-lexed
// through hclwrite so the emitted tokens are exactly what Decode will read.
func setMath(b *hclwrite.Body, name string, n *formula.Node) error {
	if n == nil {
		return nil
	}
	src := fmt.Sprintf("%s = %s\n", name, n.String())
	tmp, diags := hclwrite.ParseConfig([]byte(src), "formula", hcl.InitialPos)
	if diags.HasErrors() {
		return fmt.Errorf("cannot render %s expression %q: %w", name, n.String(), diags)
	}
	attr := tmp.Body().GetAttribute(name)
	if attr == nil {
		return fmt.Errorf("cannot render %s expression %q", name, n.String())
	}
	b.SetAttributeRaw(name, attr.Expr().BuildTokens(nil))
	return nil
}

// writeBase emits the shared attributes. withID is set for elements whose id
// is not already a block label.
func writeBase(b *hclwrite.Body, base *sbml.Base, withID bool) {
	if withID {
		setString(b, "id", base.ID)
	}
	setString(b, "meta_id", base.MetaID)
	setString(b, "name", base.Name)
	setString(b, "sbo_term", base.SBOTerm)
	setString(b, "annotation", base.Annotation)
	for _, re := range base.ReplacedElements {
		rb := b.AppendNewBlock("replaced_element", nil).Body()
		setString(rb, "submodel_ref", re.SubmodelRef)
		writeRefAttrs(rb, &re.Ref)
		setString(rb, "deletion", re.DeletionRef)
		setString(rb, "conversion_factor", re.ConversionFactor)
		writeNestedRef(rb, re.Ref.Nested)
	}
	if rb := base.ReplacedBy; rb != nil {
		body := b.AppendNewBlock("replaced_by", nil).Body()
		setString(body, "submodel_ref", rb.SubmodelRef)
		writeRefAttrs(body, &rb.Ref)
		writeNestedRef(body, rb.Ref.Nested)
	}
}

func writeRefAttrs(b *hclwrite.Body, r *sbml.Ref) {
	setString(b, "id_ref", r.IDRef)
	setString(b, "meta_id_ref", r.MetaIDRef)
	setString(b, "port_ref", r.PortRef)
	setString(b, "unit_ref", r.UnitRef)
}

func writeNestedRef(b *hclwrite.Body, r *sbml.Ref) {
	if r == nil {
		return
	}
	nb := b.AppendNewBlock("sbase_ref", nil).Body()
	writeRefAttrs(nb, r)
	writeNestedRef(nb, r.Nested)
}

func writeModel(b *hclwrite.Body, m *sbml.Model) error {
	writeBase(b, &m.Base, false)
	if m.CompEnabled {
		b.SetAttributeValue("comp", cty.True)
	}
	setString(b, "substance_units", m.SubstanceUnits)
	setString(b, "time_units", m.TimeUnits)
	setString(b, "volume_units", m.VolumeUnits)
	setString(b, "area_units", m.AreaUnits)
	setString(b, "length_units", m.LengthUnits)
	setString(b, "extent_units", m.ExtentUnits)
	setString(b, "conversion_factor", m.ConversionFactor)

	for _, fd := range m.FunctionDefinitions {
		fb := b.AppendNewBlock("function_definition", []string{fd.ID}).Body()
		if len(fd.Args) > 0 {
			args := make([]cty.Value, len(fd.Args))
			for i, a := range fd.Args {
				args[i] = cty.StringVal(a)
			}
			fb.SetAttributeValue("args", cty.ListVal(args))
		}
		if err := setMath(fb, "body", fd.Body); err != nil {
			return err
		}
		writeBase(fb, &fd.Base, false)
	}
	for _, ud := range m.UnitDefinitions {
		ub := b.AppendNewBlock("unit_definition", []string{ud.ID}).Body()
		writeBase(ub, &ud.Base, false)
		for _, u := range ud.Units {
			body := ub.AppendNewBlock("unit", nil).Body()
			body.SetAttributeValue("kind", cty.StringVal(u.Kind))
			if u.Exponent != 1 {
				body.SetAttributeValue("exponent", cty.NumberFloatVal(u.Exponent))
			}
			if u.Scale != 0 {
				body.SetAttributeValue("scale", cty.NumberIntVal(int64(u.Scale)))
			}
			if u.Multiplier != 1 {
				body.SetAttributeValue("multiplier", cty.NumberFloatVal(u.Multiplier))
			}
		}
	}
	for _, c := range m.Compartments {
		cb := b.AppendNewBlock("compartment", []string{c.ID}).Body()
		setFloat(cb, "spatial_dimensions", c.SpatialDimensions)
		setFloat(cb, "size", c.Size)
		setString(cb, "units", c.Units)
		setBool(cb, "constant", c.Constant)
		writeBase(cb, &c.Base, false)
	}
	for _, s := range m.Species {
		sb := b.AppendNewBlock("species", []string{s.ID}).Body()
		setString(sb, "compartment", s.Compartment)
		setFloat(sb, "initial_amount", s.InitialAmount)
		setFloat(sb, "initial_concentration", s.InitialConcentration)
		setString(sb, "substance_units", s.SubstanceUnits)
		setBool(sb, "has_only_substance_units", s.HasOnlySubstanceUnits)
		setBool(sb, "boundary_condition", s.BoundaryCondition)
		setBool(sb, "constant", s.Constant)
		setString(sb, "conversion_factor", s.ConversionFactor)
		writeBase(sb, &s.Base, false)
	}
	for _, p := range m.Parameters {
		pb := b.AppendNewBlock("parameter", []string{p.ID}).Body()
		setFloat(pb, "value", p.Value)
		setString(pb, "units", p.Units)
		setBool(pb, "constant", p.Constant)
		writeBase(pb, &p.Base, false)
	}
	for _, ia := range m.InitialAssignments {
		ib := b.AppendNewBlock("initial_assignment", nil).Body()
		setString(ib, "symbol", ia.Symbol)
		if err := setMath(ib, "math", ia.Math); err != nil {
			return err
		}
		writeBase(ib, &ia.Base, true)
	}
	for _, r := range m.Rules {
		rb := b.AppendNewBlock(r.Kind.String(), nil).Body()
		if r.Kind != sbml.AlgebraicRule {
			setString(rb, "variable", r.Variable)
		}
		if err := setMath(rb, "math", r.Math); err != nil {
			return err
		}
		writeBase(rb, &r.Base, true)
	}
	for _, c := range m.Constraints {
		cb := b.AppendNewBlock("constraint", nil).Body()
		if err := setMath(cb, "math", c.Math); err != nil {
			return err
		}
		setString(cb, "message", c.Message)
		writeBase(cb, &c.Base, true)
	}
	for _, r := range m.Reactions {
		if err := writeReaction(b.AppendNewBlock("reaction", []string{r.ID}).Body(), r); err != nil {
			return err
		}
	}
	for _, ev := range m.Events {
		if err := writeEvent(b.AppendNewBlock("event", []string{ev.ID}).Body(), ev); err != nil {
			return err
		}
	}
	for _, p := range m.Ports {
		pb := b.AppendNewBlock("port", []string{p.ID}).Body()
		setString(pb, "id_ref", p.Ref.IDRef)
		setString(pb, "meta_id_ref", p.Ref.MetaIDRef)
		setString(pb, "unit_ref", p.Ref.UnitRef)
		writeNestedRef(pb, p.Ref.Nested)
		writeBase(pb, &p.Base, false)
	}
	for _, s := range m.Submodels {
		sb := b.AppendNewBlock("submodel", []string{s.ID}).Body()
		setString(sb, "model_ref", s.ModelRef)
		setString(sb, "time_conversion_factor", s.TimeConversionFactor)
		setString(sb, "extent_conversion_factor", s.ExtentConversionFactor)
		writeBase(sb, &s.Base, false)
		for _, d := range s.Deletions {
			db := sb.AppendNewBlock("deletion", nil).Body()
			writeRefAttrs(db, &d.Ref)
			writeNestedRef(db, d.Ref.Nested)
			writeBase(db, &d.Base, true)
		}
	}
	return nil
}

func writeReaction(b *hclwrite.Body, r *sbml.Reaction) error {
	setBool(b, "reversible", r.Reversible)
	setString(b, "compartment", r.Compartment)
	writeBase(b, &r.Base, false)
	writeRefs := func(blockType string, refs []*sbml.SpeciesReference) {
		for _, sr := range refs {
			sb := b.AppendNewBlock(blockType, nil).Body()
			setString(sb, "species", sr.Species)
			setFloat(sb, "stoichiometry", sr.Stoichiometry)
			setBool(sb, "constant", sr.Constant)
			writeBase(sb, &sr.Base, true)
		}
	}
	writeRefs("reactant", r.Reactants)
	writeRefs("product", r.Products)
	for _, mr := range r.Modifiers {
		mb := b.AppendNewBlock("modifier", nil).Body()
		setString(mb, "species", mr.Species)
		writeBase(mb, &mr.Base, true)
	}
	if kl := r.KineticLaw; kl != nil {
		kb := b.AppendNewBlock("kinetic_law", nil).Body()
		if err := setMath(kb, "math", kl.Math); err != nil {
			return err
		}
		writeBase(kb, &kl.Base, true)
		for _, lp := range kl.LocalParameters {
			lb := kb.AppendNewBlock("local_parameter", []string{lp.ID}).Body()
			setFloat(lb, "value", lp.Value)
			setString(lb, "units", lp.Units)
			writeBase(lb, &lp.Base, false)
		}
	}
	return nil
}

func writeEvent(b *hclwrite.Body, ev *sbml.Event) error {
	setBool(b, "use_values_from_trigger_time", ev.UseValuesFromTriggerTime)
	writeBase(b, &ev.Base, false)
	if t := ev.Trigger; t != nil {
		tb := b.AppendNewBlock("trigger", nil).Body()
		if err := setMath(tb, "math", t.Math); err != nil {
			return err
		}
		setBool(tb, "initial_value", t.InitialValue)
		setBool(tb, "persistent", t.Persistent)
		writeBase(tb, &t.Base, true)
	}
	if d := ev.Delay; d != nil {
		db := b.AppendNewBlock("delay", nil).Body()
		if err := setMath(db, "math", d.Math); err != nil {
			return err
		}
		writeBase(db, &d.Base, true)
	}
	if p := ev.Priority; p != nil {
		pb := b.AppendNewBlock("priority", nil).Body()
		if err := setMath(pb, "math", p.Math); err != nil {
			return err
		}
		writeBase(pb, &p.Base, true)
	}
	for _, a := range ev.Assignments {
		ab := b.AppendNewBlock("event_assignment", nil).Body()
		setString(ab, "variable", a.Variable)
		if err := setMath(ab, "math", a.Math); err != nil {
			return err
		}
		writeBase(ab, &a.Base, true)
	}
	return nil
}
