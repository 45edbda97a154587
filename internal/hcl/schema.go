package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// The structs in this file mirror the block layout of a model document for
// gohcl decoding. Attributes every element accepts (meta_id, name,
// annotation, composition decorations, ...) are not repeated here: each
// element keeps them in its Remain body, which is decoded into commonBlock
// in a second pass.

// fileRoot holds every top-level block of a document.
type fileRoot struct {
	Models                   []*modelBlock         `hcl:"model,block"`
	ModelDefinitions         []*modelBlock         `hcl:"model_definition,block"`
	ExternalModelDefinitions []*externalModelBlock `hcl:"external_model_definition,block"`
}

// commonBlock is the attribute set shared by all elements.
type commonBlock struct {
	ID               string                  `hcl:"id,optional"`
	MetaID           string                  `hcl:"meta_id,optional"`
	Name             string                  `hcl:"name,optional"`
	SBOTerm          string                  `hcl:"sbo_term,optional"`
	Annotation       string                  `hcl:"annotation,optional"`
	ReplacedElements []*replacedElementBlock `hcl:"replaced_element,block"`
	ReplacedBy       *replacedByBlock        `hcl:"replaced_by,block"`
}

// refBlock is a possibly nested reference into a submodel.
type refBlock struct {
	IDRef     string    `hcl:"id_ref,optional"`
	MetaIDRef string    `hcl:"meta_id_ref,optional"`
	PortRef   string    `hcl:"port_ref,optional"`
	UnitRef   string    `hcl:"unit_ref,optional"`
	Nested    *refBlock `hcl:"sbase_ref,block"`
}

type replacedElementBlock struct {
	SubmodelRef      string    `hcl:"submodel_ref"`
	IDRef            string    `hcl:"id_ref,optional"`
	MetaIDRef        string    `hcl:"meta_id_ref,optional"`
	PortRef          string    `hcl:"port_ref,optional"`
	UnitRef          string    `hcl:"unit_ref,optional"`
	DeletionRef      string    `hcl:"deletion,optional"`
	ConversionFactor string    `hcl:"conversion_factor,optional"`
	Nested           *refBlock `hcl:"sbase_ref,block"`
}

type replacedByBlock struct {
	SubmodelRef string    `hcl:"submodel_ref"`
	IDRef       string    `hcl:"id_ref,optional"`
	MetaIDRef   string    `hcl:"meta_id_ref,optional"`
	PortRef     string    `hcl:"port_ref,optional"`
	UnitRef     string    `hcl:"unit_ref,optional"`
	Nested      *refBlock `hcl:"sbase_ref,block"`
}

type modelBlock struct {
	ID               string `hcl:"id,label"`
	Comp             *bool  `hcl:"comp,optional"`
	SubstanceUnits   string `hcl:"substance_units,optional"`
	TimeUnits        string `hcl:"time_units,optional"`
	VolumeUnits      string `hcl:"volume_units,optional"`
	AreaUnits        string `hcl:"area_units,optional"`
	LengthUnits      string `hcl:"length_units,optional"`
	ExtentUnits      string `hcl:"extent_units,optional"`
	ConversionFactor string `hcl:"conversion_factor,optional"`

	FunctionDefinitions []*functionDefinitionBlock `hcl:"function_definition,block"`
	UnitDefinitions     []*unitDefinitionBlock     `hcl:"unit_definition,block"`
	Compartments        []*compartmentBlock        `hcl:"compartment,block"`
	Species             []*speciesBlock            `hcl:"species,block"`
	Parameters          []*parameterBlock          `hcl:"parameter,block"`
	InitialAssignments  []*initialAssignmentBlock  `hcl:"initial_assignment,block"`
	AssignmentRules     []*ruleBlock               `hcl:"assignment_rule,block"`
	RateRules           []*ruleBlock               `hcl:"rate_rule,block"`
	AlgebraicRules      []*algebraicRuleBlock      `hcl:"algebraic_rule,block"`
	Constraints         []*constraintBlock         `hcl:"constraint,block"`
	Reactions           []*reactionBlock           `hcl:"reaction,block"`
	Events              []*eventBlock              `hcl:"event,block"`
	Ports               []*portBlock               `hcl:"port,block"`
	Submodels           []*submodelBlock           `hcl:"submodel,block"`

	Remain hcl.Body `hcl:",remain"`
}

type functionDefinitionBlock struct {
	ID     string         `hcl:"id,label"`
	Args   []string       `hcl:"args,optional"`
	Body   hcl.Expression `hcl:"body"`
	Remain hcl.Body       `hcl:",remain"`
}

type unitBlock struct {
	Kind       string   `hcl:"kind"`
	Exponent   *float64 `hcl:"exponent,optional"`
	Scale      *int     `hcl:"scale,optional"`
	Multiplier *float64 `hcl:"multiplier,optional"`
}

type unitDefinitionBlock struct {
	ID     string       `hcl:"id,label"`
	Units  []*unitBlock `hcl:"unit,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type compartmentBlock struct {
	ID                string   `hcl:"id,label"`
	SpatialDimensions *float64 `hcl:"spatial_dimensions,optional"`
	Size              *float64 `hcl:"size,optional"`
	Units             string   `hcl:"units,optional"`
	Constant          *bool    `hcl:"constant,optional"`
	Remain            hcl.Body `hcl:",remain"`
}

type speciesBlock struct {
	ID                    string   `hcl:"id,label"`
	Compartment           string   `hcl:"compartment,optional"`
	InitialAmount         *float64 `hcl:"initial_amount,optional"`
	InitialConcentration  *float64 `hcl:"initial_concentration,optional"`
	SubstanceUnits        string   `hcl:"substance_units,optional"`
	HasOnlySubstanceUnits *bool    `hcl:"has_only_substance_units,optional"`
	BoundaryCondition     *bool    `hcl:"boundary_condition,optional"`
	Constant              *bool    `hcl:"constant,optional"`
	ConversionFactor      string   `hcl:"conversion_factor,optional"`
	Remain                hcl.Body `hcl:",remain"`
}

type parameterBlock struct {
	ID       string   `hcl:"id,label"`
	Value    *float64 `hcl:"value,optional"`
	Units    string   `hcl:"units,optional"`
	Constant *bool    `hcl:"constant,optional"`
	Remain   hcl.Body `hcl:",remain"`
}

type initialAssignmentBlock struct {
	Symbol string         `hcl:"symbol"`
	Math   hcl.Expression `hcl:"math"`
	Remain hcl.Body       `hcl:",remain"`
}

type ruleBlock struct {
	Variable string         `hcl:"variable"`
	Math     hcl.Expression `hcl:"math"`
	Remain   hcl.Body       `hcl:",remain"`
}

type algebraicRuleBlock struct {
	Math   hcl.Expression `hcl:"math"`
	Remain hcl.Body       `hcl:",remain"`
}

type constraintBlock struct {
	Math    hcl.Expression `hcl:"math"`
	Message string         `hcl:"message,optional"`
	Remain  hcl.Body       `hcl:",remain"`
}

type reactionBlock struct {
	ID          string                   `hcl:"id,label"`
	Reversible  *bool                    `hcl:"reversible,optional"`
	Compartment string                   `hcl:"compartment,optional"`
	Reactants   []*speciesReferenceBlock `hcl:"reactant,block"`
	Products    []*speciesReferenceBlock `hcl:"product,block"`
	Modifiers   []*modifierBlock         `hcl:"modifier,block"`
	KineticLaw  *kineticLawBlock         `hcl:"kinetic_law,block"`
	Remain      hcl.Body                 `hcl:",remain"`
}

type speciesReferenceBlock struct {
	Species       string   `hcl:"species"`
	Stoichiometry *float64 `hcl:"stoichiometry,optional"`
	Constant      *bool    `hcl:"constant,optional"`
	Remain        hcl.Body `hcl:",remain"`
}

type modifierBlock struct {
	Species string   `hcl:"species"`
	Remain  hcl.Body `hcl:",remain"`
}

type kineticLawBlock struct {
	Math            hcl.Expression         `hcl:"math"`
	LocalParameters []*localParameterBlock `hcl:"local_parameter,block"`
	Remain          hcl.Body               `hcl:",remain"`
}

type localParameterBlock struct {
	ID     string   `hcl:"id,label"`
	Value  *float64 `hcl:"value,optional"`
	Units  string   `hcl:"units,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type eventBlock struct {
	ID                       string                  `hcl:"id,label"`
	UseValuesFromTriggerTime *bool                   `hcl:"use_values_from_trigger_time,optional"`
	Trigger                  *triggerBlock           `hcl:"trigger,block"`
	Delay                    *mathBlock              `hcl:"delay,block"`
	Priority                 *mathBlock              `hcl:"priority,block"`
	Assignments              []*eventAssignmentBlock `hcl:"event_assignment,block"`
	Remain                   hcl.Body                `hcl:",remain"`
}

type triggerBlock struct {
	Math         hcl.Expression `hcl:"math"`
	InitialValue *bool          `hcl:"initial_value,optional"`
	Persistent   *bool          `hcl:"persistent,optional"`
	Remain       hcl.Body       `hcl:",remain"`
}

type mathBlock struct {
	Math   hcl.Expression `hcl:"math"`
	Remain hcl.Body       `hcl:",remain"`
}

type eventAssignmentBlock struct {
	Variable string         `hcl:"variable"`
	Math     hcl.Expression `hcl:"math"`
	Remain   hcl.Body       `hcl:",remain"`
}

type portBlock struct {
	ID        string    `hcl:"id,label"`
	IDRef     string    `hcl:"id_ref,optional"`
	MetaIDRef string    `hcl:"meta_id_ref,optional"`
	UnitRef   string    `hcl:"unit_ref,optional"`
	Nested    *refBlock `hcl:"sbase_ref,block"`
	Remain    hcl.Body  `hcl:",remain"`
}

type submodelBlock struct {
	ID                     string           `hcl:"id,label"`
	ModelRef               string           `hcl:"model_ref"`
	TimeConversionFactor   string           `hcl:"time_conversion_factor,optional"`
	ExtentConversionFactor string           `hcl:"extent_conversion_factor,optional"`
	Deletions              []*deletionBlock `hcl:"deletion,block"`
	Remain                 hcl.Body         `hcl:",remain"`
}

type deletionBlock struct {
	IDRef     string    `hcl:"id_ref,optional"`
	MetaIDRef string    `hcl:"meta_id_ref,optional"`
	PortRef   string    `hcl:"port_ref,optional"`
	UnitRef   string    `hcl:"unit_ref,optional"`
	Nested    *refBlock `hcl:"sbase_ref,block"`
	Remain    hcl.Body  `hcl:",remain"`
}

type externalModelBlock struct {
	ID       string   `hcl:"id,label"`
	Source   string   `hcl:"source"`
	ModelRef string   `hcl:"model_ref"`
	MD5      string   `hcl:"md5,optional"`
	Remain   hcl.Body `hcl:",remain"`
}
