package app_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/compflat/internal/app"
	"github.com/specialistvlad/compflat/internal/comp"
	"github.com/specialistvlad/compflat/internal/hcl"
	"github.com/specialistvlad/compflat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const mainHCL = `
model "cell" {
  comp = true

  compartment "cyto" {
    size = 1

    replaced_element {
      submodel_ref = "G"
      id_ref       = "c"
    }
  }

  submodel "G" {
    model_ref = "gene"

    deletion {
      id_ref = "junk"
    }
  }
}

model_definition "gene" {
  compartment "c" {
    size = 2
  }

  species "mrna" {
    compartment    = "c"
    initial_amount = 0
  }

  parameter "junk" {}
  parameter "k" {
    value = 0.3
  }

  reaction "transcribe" {
    product {
      species = "mrna"
    }

    kinetic_law {
      math = k * c
    }
  }
}
`

func TestRun_PrintsFlatDocument(t *testing.T) {
	// --- Arrange & Act ---
	result, doc := testutil.RunHCLFlattenTest(t, mainHCL)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.NotNil(t, doc)
	testutil.AssertNoDiagnostics(t, result)
	testutil.AssertNodeVisited(t, result, "cell.G", "G__")

	m := doc.Model
	require.NotNil(t, m)
	assert.Equal(t, "cell", m.ID)
	assert.False(t, doc.CompEnabled)
	assert.Empty(t, doc.ModelDefinitions)
	require.Len(t, m.Compartments, 1)
	assert.Equal(t, "cyto", m.Compartments[0].ID)
	require.Len(t, m.Species, 1)
	assert.Equal(t, "G__mrna", m.Species[0].ID)
	assert.Equal(t, "cyto", m.Species[0].Compartment)
	require.Len(t, m.Parameters, 1)
	assert.Equal(t, "G__k", m.Parameters[0].ID)
	require.Len(t, m.Reactions, 1)
	assert.Equal(t, "G__k * cyto", m.Reactions[0].KineticLaw.Math.String())
}

func TestRun_YAMLReport(t *testing.T) {
	result := testutil.RunFlattenTest(t, map[string]string{"main.hcl": mainHCL}, app.Config{
		InputPath:  "main.hcl",
		Format:     app.FormatYAML,
		ReportPath: "out/report.yaml",
	})
	require.Error(t, result.Err, "the report directory does not exist")

	result = testutil.RunFlattenTest(t, map[string]string{"main.hcl": mainHCL}, app.Config{
		InputPath:  "main.hcl",
		Format:     app.FormatYAML,
		ReportPath: "report.yaml",
	})
	require.NoError(t, result.Err)

	var printed app.Report
	require.NoError(t, yaml.Unmarshal([]byte(result.Output), &printed))
	assert.Equal(t, "cell", printed.Model)
	assert.Equal(t, 1, printed.Counts.Compartments)
	assert.Equal(t, 1, printed.Counts.Species)
	assert.Equal(t, 1, printed.Counts.Reactions)
	assert.Len(t, printed.Digest, 16)
	assert.Empty(t, printed.Diagnostics)

	data, err := os.ReadFile(filepath.Join(result.Dir, "report.yaml"))
	require.NoError(t, err)
	assert.Equal(t, result.Output, string(data), "the report file matches the printed report")
	assert.Equal(t, *result.Report, printed)
}

func TestRun_WritesOutputFile(t *testing.T) {
	result := testutil.RunFlattenTest(t, map[string]string{"main.hcl": mainHCL}, app.Config{
		InputPath:  "main.hcl",
		OutputPath: "flat.hcl",
	})
	require.NoError(t, result.Err)
	assert.Empty(t, result.Output)

	doc, err := hcl.NewCodec().Load(t.Context(), filepath.Join(result.Dir, "flat.hcl"))
	require.NoError(t, err)
	digest, err := hcl.Digest(doc)
	require.NoError(t, err)
	assert.Equal(t, result.Report.Digest, fmt.Sprintf("%016x", digest), "the written document round-trips")
}

func TestRun_DigestIsStable(t *testing.T) {
	cfg := app.Config{InputPath: "main.hcl"}
	first := testutil.RunFlattenTest(t, map[string]string{"main.hcl": mainHCL}, cfg)
	second := testutil.RunFlattenTest(t, map[string]string{"main.hcl": mainHCL}, cfg)
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, first.Report.Digest, second.Report.Digest)
	assert.Equal(t, first.Output, second.Output)
}

const topHCL = `
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

const otherHCL = `
model "other" {
  comp = true

  species "x" {}
}
`

func TestRun_Internalize(t *testing.T) {
	files := map[string]string{
		"main.hcl":      topHCL,
		"lib/other.hcl": otherHCL,
	}

	t.Run("enabled", func(t *testing.T) {
		result := testutil.RunFlattenTest(t, files, app.Config{InputPath: "main.hcl", Internalize: true})
		require.NoError(t, result.Err)
		assert.Equal(t, 1, result.Report.Internal)
		assert.Equal(t, 1, result.Report.Counts.Species)
		assert.Contains(t, result.Output, `species "A__x"`)
	})

	t.Run("disabled", func(t *testing.T) {
		result := testutil.RunFlattenTest(t, files, app.Config{InputPath: "main.hcl"})
		require.Error(t, result.Err)
		var unknown *comp.UnknownModelError
		require.True(t, errors.As(result.Err, &unknown), "got %v", result.Err)
		assert.Equal(t, "ext", unknown.ModelRef)
	})

	t.Run("missing external document", func(t *testing.T) {
		result := testutil.RunFlattenTest(t, map[string]string{"main.hcl": topHCL}, app.Config{InputPath: "main.hcl", Internalize: true})
		var fetchErr *comp.FetchError
		require.True(t, errors.As(result.Err, &fetchErr), "got %v", result.Err)
	})
}

func TestRun_ReportsDiagnostics(t *testing.T) {
	result := testutil.RunFlattenTest(t, map[string]string{"main.hcl": `
model "M" {
  comp = true

  submodel "S" {
    model_ref = "D"

    deletion {
      id_ref = "y"
    }
  }
}

model_definition "D" {
  species "y" {}
  parameter "p" {}

  assignment_rule {
    variable = "p"
    math     = y + 1
  }
}
`}, app.Config{InputPath: "main.hcl"})

	require.NoError(t, result.Err)
	require.Len(t, result.Report.Diagnostics, 1)
	assert.Contains(t, result.Report.Diagnostics[0], `"y"`)
	assert.Contains(t, result.LogOutput, "Flattening diagnostic.")
}

func TestRun_LoadFailure(t *testing.T) {
	result := testutil.RunFlattenTest(t, map[string]string{"main.hcl": `model "M" {`}, app.Config{InputPath: "main.hcl"})
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed to load document")
	assert.Nil(t, result.Report)

	result = testutil.RunFlattenTest(t, nil, app.Config{InputPath: "absent.hcl"})
	require.Error(t, result.Err)
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name       string
		cfg        app.Config
		wantErr    string
		wantFormat string
	}{
		{name: "defaults to hcl", cfg: app.Config{InputPath: "a.hcl"}, wantFormat: app.FormatHCL},
		{name: "yaml", cfg: app.Config{InputPath: "a.hcl", Format: "yaml"}, wantFormat: app.FormatYAML},
		{name: "input required", cfg: app.Config{}, wantErr: "InputPath is a required"},
		{name: "unknown format", cfg: app.Config{InputPath: "a.hcl", Format: "xml"}, wantErr: `unsupported output format "xml"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := app.NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFormat, cfg.Format)
		})
	}
}
