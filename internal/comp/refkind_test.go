package comp

import (
	"testing"

	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
	"github.com/stretchr/testify/assert"
)

func TestSelectRef(t *testing.T) {
	testCases := []struct {
		name     string
		ref      sbml.Ref
		wantID   string
		wantKind RefKind
		wantOK   bool
	}{
		{name: "id", ref: sbml.Ref{IDRef: "a"}, wantID: "a", wantKind: KindID, wantOK: true},
		{name: "metaId", ref: sbml.Ref{MetaIDRef: "m"}, wantID: "m", wantKind: KindMetaID, wantOK: true},
		{name: "port", ref: sbml.Ref{PortRef: "p"}, wantID: "p", wantKind: KindPort, wantOK: true},
		{name: "unit", ref: sbml.Ref{UnitRef: "u"}, wantID: "u", wantKind: KindUnit, wantOK: true},
		{name: "id beats everything", ref: sbml.Ref{IDRef: "a", MetaIDRef: "m", PortRef: "p", UnitRef: "u"}, wantID: "a", wantKind: KindID, wantOK: true},
		{name: "metaId beats port", ref: sbml.Ref{MetaIDRef: "m", PortRef: "p"}, wantID: "m", wantKind: KindMetaID, wantOK: true},
		{name: "port beats unit", ref: sbml.Ref{PortRef: "p", UnitRef: "u"}, wantID: "p", wantKind: KindPort, wantOK: true},
		{name: "empty", ref: sbml.Ref{}, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, kind, ok := SelectRef(tc.ref)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, id)
				assert.Equal(t, tc.wantKind, kind)
			}
		})
	}
}

func TestResolveChain(t *testing.T) {
	base := pathkey.New("main", "A")

	t.Run("flat reference stays on the path", func(t *testing.T) {
		ref := &sbml.Ref{IDRef: "x"}
		path, leaf := resolveChain(base, ref)
		assert.True(t, path.Equal(base))
		assert.Same(t, ref, leaf)
	})

	t.Run("nested reference extends the path per link", func(t *testing.T) {
		ref := &sbml.Ref{IDRef: "B", Nested: &sbml.Ref{MetaIDRef: "C", Nested: &sbml.Ref{PortRef: "p"}}}
		path, leaf := resolveChain(base, ref)
		assert.Equal(t, "main.A.B.C", path.String())
		assert.Equal(t, "p", leaf.PortRef)
		assert.Equal(t, "main.A", base.String(), "base key is not modified")
	})
}

func TestRefKind_String(t *testing.T) {
	assert.Equal(t, "id", KindID.String())
	assert.Equal(t, "metaId", KindMetaID.String())
	assert.Equal(t, "port", KindPort.String())
	assert.Equal(t, "unit", KindUnit.String())
	assert.Equal(t, "unknown", RefKind(42).String())
}
