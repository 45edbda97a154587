package comp_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/compflat/internal/comp"
	"github.com/specialistvlad/compflat/internal/hcl"
	"github.com/specialistvlad/compflat/internal/inmemorystore"
	"github.com/specialistvlad/compflat/internal/sbml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFetcher serves documents from memory and counts the requests it gets.
type mapFetcher struct {
	docs  map[string]string
	calls int
}

func (f *mapFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	f.calls++
	src, ok := f.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%s: not found", uri)
	}
	return []byte(src), nil
}

func decodeAt(t *testing.T, uri, src string) *sbml.Document {
	t.Helper()
	doc, err := hcl.NewCodec().Decode([]byte(src), uri)
	require.NoError(t, err)
	require.Equal(t, uri, doc.LocationURI)
	return doc
}

func modelIDs(doc *sbml.Document) []string {
	out := make([]string, 0, len(doc.ModelDefinitions))
	for _, md := range doc.ModelDefinitions {
		out = append(out, md.ID)
	}
	return out
}

const topDoc = `
model "top" {
  comp = true

  submodel "A" {
    model_ref = "ext"
  }
}

external_model_definition "ext" {
  source    = "lib/other.hcl"
  model_ref = "other"
}
`

const otherDoc = `
model "other" {
  comp = true

  parameter "k" {}

  submodel "H" {
    model_ref = "helper"
  }
}

model_definition "helper" {
  species "x" {}
}

model_definition "unrelated" {
  species "z" {}
}
`

func TestInternalize_BringsReferencedDefinitions(t *testing.T) {
	fetcher := &mapFetcher{docs: map[string]string{
		"file:///models/lib/other.hcl": otherDoc,
	}}
	in := comp.NewInternalizer(fetcher, hcl.NewCodec())
	doc := decodeAt(t, "file:///models/top.hcl", topDoc)

	out, err := in.Internalize(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	assert.Empty(t, out.ExternalModelDefinitions)
	assert.Equal(t, []string{"ext", "other_helper", "other_unrelated"}, modelIDs(out))
	ext := out.ModelDefinition("ext")
	require.NotNil(t, ext)
	require.Len(t, ext.Submodels, 1)
	assert.Equal(t, "other_helper", ext.Submodels[0].ModelRef)

	assert.Len(t, doc.ExternalModelDefinitions, 1, "input untouched")
	assert.Empty(t, doc.ModelDefinitions)

	res, err := comp.Flatten(context.Background(), out)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, []string{"A__H__x"}, ids(res.Document.Model.Species))
	assert.Equal(t, []string{"A__k"}, ids(res.Document.Model.Parameters))
}

func TestInternalize_NestedExternalDocuments(t *testing.T) {
	fetcher := &mapFetcher{docs: map[string]string{
		"file:///models/a.hcl": `
model_definition "mid" {
  submodel "L" {
    model_ref = "e2"
  }
}

external_model_definition "e2" {
  source    = "sub/b.hcl"
  model_ref = "leaf"
}
`,
		"file:///models/sub/b.hcl": `
model_definition "leaf" {
  species "y" {}
}
`,
	}}
	doc := decodeAt(t, "file:///models/top.hcl", `
model "top" {
  comp = true

  submodel "M" {
    model_ref = "e1"
  }
}

external_model_definition "e1" {
  source    = "a.hcl"
  model_ref = "mid"
}
`)

	out, err := comp.NewInternalizer(fetcher, hcl.NewCodec()).Internalize(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
	assert.Equal(t, []string{"e1", "mid_e2"}, modelIDs(out))
	assert.Equal(t, "mid_e2", out.ModelDefinition("e1").Submodels[0].ModelRef)

	res, err := comp.Flatten(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []string{"M__L__y"}, ids(res.Document.Model.Species))
}

func TestInternalize_PrefixAvoidsExistingDefinitions(t *testing.T) {
	fetcher := &mapFetcher{docs: map[string]string{
		"file:///models/lib/other.hcl": otherDoc,
	}}
	doc := decodeAt(t, "file:///models/top.hcl", topDoc+`
model_definition "other_local" {
  parameter "q" {}
}
`)

	out, err := comp.NewInternalizer(fetcher, hcl.NewCodec()).Internalize(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"other_local", "ext", "other__helper", "other__unrelated"}, modelIDs(out))
}

func TestInternalize_MainModelNotReferenced(t *testing.T) {
	fetcher := &mapFetcher{docs: map[string]string{
		"file:///models/lib/other.hcl": `
model "main" {
  comp = true

  submodel "X" {
    model_ref = "helper"
  }
}

model_definition "helper" {
  species "x" {}
}
`,
	}}
	doc := decodeAt(t, "file:///models/top.hcl", `
model "top" {
  comp = true

  submodel "A" {
    model_ref = "ext"
  }
}

external_model_definition "ext" {
  source    = "lib/other.hcl"
  model_ref = "helper"
}
`)

	out, err := comp.NewInternalizer(fetcher, hcl.NewCodec()).Internalize(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"ext"}, modelIDs(out), "the remote main model is left behind")
}

func TestInternalize_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		location  string
		src       string
		docs      map[string]string
		wantCalls int
		check     func(t *testing.T, err error)
	}{
		{
			name:     "unset location",
			location: "top.hcl",
			src:      topDoc,
			docs: map[string]string{
				"file:///models/lib/other.hcl": otherDoc,
			},
			wantCalls: 0,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, comp.ErrUnsetLocationURI)
			},
		},
		{
			name:      "fetch failure",
			location:  "file:///models/top.hcl",
			src:       topDoc,
			docs:      map[string]string{},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var fetchErr *comp.FetchError
				require.True(t, errors.As(err, &fetchErr), "got %v", err)
				assert.Equal(t, "file:///models/lib/other.hcl", fetchErr.URI)
				assert.Error(t, errors.Unwrap(fetchErr))
			},
		},
		{
			name:     "undecodable document",
			location: "file:///models/top.hcl",
			src:      topDoc,
			docs: map[string]string{
				"file:///models/lib/other.hcl": `model "other" {`,
			},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var fetchErr *comp.FetchError
				require.True(t, errors.As(err, &fetchErr), "got %v", err)
			},
		},
		{
			name:     "referenced model missing",
			location: "file:///models/top.hcl",
			src:      topDoc,
			docs: map[string]string{
				"file:///models/lib/other.hcl": `
model_definition "helper" {
  species "x" {}
}
`,
			},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var unknown *comp.UnknownModelError
				require.True(t, errors.As(err, &unknown), "got %v", err)
				assert.Equal(t, "ext", unknown.Submodel)
				assert.Equal(t, "other", unknown.ModelRef)
			},
		},
		{
			name:     "documents referencing each other",
			location: "file:///m/a.hcl",
			src: `
model "a" {
  comp = true

  submodel "B" {
    model_ref = "eb"
  }
}

external_model_definition "eb" {
  source    = "b.hcl"
  model_ref = "b"
}
`,
			docs: map[string]string{
				"file:///m/b.hcl": `
model_definition "b" {
  submodel "A" {
    model_ref = "ea"
  }
}

external_model_definition "ea" {
  source    = "a.hcl"
  model_ref = "a"
}
`,
			},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var cyclic *comp.CyclicCompositionError
				require.True(t, errors.As(err, &cyclic), "got %v", err)
				assert.Equal(t, []string{"file:///m/a.hcl", "file:///m/b.hcl", "file:///m/a.hcl"}, cyclic.Chain)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := hcl.NewCodec().Decode([]byte(tc.src), tc.location)
			require.NoError(t, err)
			fetcher := &mapFetcher{docs: tc.docs}

			out, err := comp.NewInternalizer(fetcher, hcl.NewCodec()).Internalize(context.Background(), doc)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tc.wantCalls, fetcher.calls)
			tc.check(t, err)
		})
	}
}

func TestInternalize_NoExternalDefinitions(t *testing.T) {
	fetcher := &mapFetcher{}
	doc := decodeAt(t, "file:///models/flat.hcl", `
model "flat" {
  comp = true

  species "x" {}
}
`)

	out, err := comp.NewInternalizer(fetcher, hcl.NewCodec()).Internalize(context.Background(), doc)
	require.NoError(t, err)
	assert.Zero(t, fetcher.calls)
	assert.NotSame(t, doc, out)
	assert.Equal(t, doc, out)
}

func TestAFSFetcher_ReadsFileURLs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.hcl")
	require.NoError(t, os.WriteFile(path, []byte(otherDoc), 0o644))

	data, err := comp.NewAFSFetcher().Fetch(context.Background(), hcl.FileURI(path))
	require.NoError(t, err)
	assert.Equal(t, otherDoc, string(data))

	_, err = comp.NewAFSFetcher().Fetch(context.Background(), hcl.FileURI(filepath.Join(dir, "missing.hcl")))
	assert.Error(t, err)
}

func TestCachingFetcher_FetchesEachSourceOnce(t *testing.T) {
	fetcher := &mapFetcher{docs: map[string]string{
		"file:///models/lib/shared.hcl": `
model_definition "a" {
  species "x" {}
}

model_definition "b" {
  parameter "k" {}
}
`,
	}}
	cached := comp.NewCachingFetcher(fetcher, inmemorystore.New())
	doc := decodeAt(t, "file:///models/top.hcl", `
model "top" {
  comp = true

  submodel "X" {
    model_ref = "ext1"
  }

  submodel "Y" {
    model_ref = "ext2"
  }
}

external_model_definition "ext1" {
  source    = "lib/shared.hcl"
  model_ref = "a"
}

external_model_definition "ext2" {
  source    = "lib/shared.hcl"
  model_ref = "b"
}
`)

	out, err := comp.NewInternalizer(cached, hcl.NewCodec()).Internalize(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, []string{"ext1", "a_b", "ext2", "b_a"}, modelIDs(out))

	res, err := comp.Flatten(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []string{"X__x"}, ids(res.Document.Model.Species))
	assert.Equal(t, []string{"Y__k"}, ids(res.Document.Model.Parameters))

	_, err = cached.Fetch(context.Background(), "file:///models/lib/missing.hcl")
	require.Error(t, err)
	_, err = cached.Fetch(context.Background(), "file:///models/lib/missing.hcl")
	require.Error(t, err)
	assert.Equal(t, 3, fetcher.calls, "failures are not cached")
}
