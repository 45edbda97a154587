package comp

import (
	"strings"
	"testing"

	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
	"github.com/stretchr/testify/assert"
)

func modelWith(ids ...string) *sbml.Model {
	m := sbml.NewModel("D")
	for _, id := range ids {
		m.Parameters = append(m.Parameters, &sbml.Parameter{Base: sbml.Base{ID: id}})
	}
	return m
}

func TestComputePrefix(t *testing.T) {
	testCases := []struct {
		name  string
		model *sbml.Model
		path  pathkey.Key
		want  string
	}{
		{name: "root", model: modelWith("x"), path: pathkey.New("main"), want: ""},
		{name: "empty path", model: modelWith("x"), path: pathkey.New(), want: ""},
		{name: "child", model: modelWith("x"), path: pathkey.New("main", "S"), want: "S__"},
		{name: "grandchild", model: modelWith("x"), path: pathkey.New("main", "S", "T"), want: "S__T__"},
		{name: "collision escalates", model: modelWith("x", "S__x"), path: pathkey.New("main", "S"), want: "S___"},
		{name: "repeated collision", model: modelWith("S__a", "S___b", "S____c"), path: pathkey.New("main", "S"), want: "S_____"},
		{
			name: "metaId collides too",
			model: func() *sbml.Model {
				m := modelWith("x")
				m.Parameters[0].MetaID = "S__meta"
				return m
			}(),
			path: pathkey.New("main", "S"),
			want: "S___",
		},
		{
			name: "submodel ids are considered",
			model: func() *sbml.Model {
				m := modelWith("x")
				m.Submodels = []*sbml.Submodel{{Base: sbml.Base{ID: "S__inner"}}}
				return m
			}(),
			path: pathkey.New("main", "S"),
			want: "S___",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePrefix(tc.model, tc.path)
			assert.Equal(t, tc.want, got)
			for _, id := range collectIdentifiers(tc.model) {
				if got != "" {
					assert.False(t, strings.HasPrefix(id, got), "%q starts with prefix %q", id, got)
				}
			}
			assert.Equal(t, got, ComputePrefix(tc.model, tc.path), "deterministic")
		})
	}
}

func TestApplyPrefix(t *testing.T) {
	m := modelWith("k")
	m.Parameters[0].MetaID = "meta_k"
	m.Reactions = []*sbml.Reaction{{
		Base:       sbml.Base{ID: "r"},
		KineticLaw: &sbml.KineticLaw{LocalParameters: []*sbml.LocalParameter{{Base: sbml.Base{ID: "kl"}}}},
	}}
	m.InitialAssignments = []*sbml.InitialAssignment{{Symbol: "k"}}
	m.Ports = []*sbml.Port{{Base: sbml.Base{ID: "p"}}}

	applyPrefix(m, "S__")

	assert.Equal(t, "S__k", m.Parameters[0].ID)
	assert.Equal(t, "S__meta_k", m.Parameters[0].MetaID)
	assert.Equal(t, "S__r", m.Reactions[0].ID)
	assert.Equal(t, "S__kl", m.Reactions[0].KineticLaw.LocalParameters[0].ID)
	assert.Empty(t, m.InitialAssignments[0].ID, "unset ids stay unset")
	assert.Equal(t, "k", m.InitialAssignments[0].Symbol, "references are left to the rewriter")
	assert.Equal(t, "p", m.Ports[0].ID, "ports are not content")
}
