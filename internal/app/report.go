package app

import (
	"fmt"

	"github.com/specialistvlad/compflat/internal/comp"
	"github.com/specialistvlad/compflat/internal/sbml"
	"gopkg.in/yaml.v3"
)

// Report summarizes one run.
type Report struct {
	Input       string   `yaml:"input"`
	Model       string   `yaml:"model"`
	Digest      string   `yaml:"digest"`
	Internal    int      `yaml:"internalized_definitions"`
	Counts      Counts   `yaml:"counts"`
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// Counts are the element counts of the flat model.
type Counts struct {
	FunctionDefinitions int `yaml:"function_definitions"`
	UnitDefinitions     int `yaml:"unit_definitions"`
	Compartments        int `yaml:"compartments"`
	Species             int `yaml:"species"`
	Parameters          int `yaml:"parameters"`
	InitialAssignments  int `yaml:"initial_assignments"`
	Rules               int `yaml:"rules"`
	Constraints         int `yaml:"constraints"`
	Reactions           int `yaml:"reactions"`
	Events              int `yaml:"events"`
}

func newReport(input string, internalized int, res *comp.Result, digest uint64) *Report {
	m := res.Document.Model
	r := &Report{
		Input:    input,
		Digest:   fmt.Sprintf("%016x", digest),
		Internal: internalized,
	}
	if m != nil {
		r.Model = m.ID
		r.Counts = countElements(m)
	}
	for _, d := range res.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, d.Error())
	}
	return r
}

func countElements(m *sbml.Model) Counts {
	return Counts{
		FunctionDefinitions: len(m.FunctionDefinitions),
		UnitDefinitions:     len(m.UnitDefinitions),
		Compartments:        len(m.Compartments),
		Species:             len(m.Species),
		Parameters:          len(m.Parameters),
		InitialAssignments:  len(m.InitialAssignments),
		Rules:               len(m.Rules),
		Constraints:         len(m.Constraints),
		Reactions:           len(m.Reactions),
		Events:              len(m.Events),
	}
}

// Marshal renders the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
