package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/compflat/internal/comp"
	"github.com/specialistvlad/compflat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The model block is never closed.
	modelHCL := `
		model "M" {
		  comp = true

		  parameter "k" {}
	`

	// --- Act ---
	result, doc := testutil.RunHCLFlattenTest(t, modelHCL)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Nil(t, doc)
	assert.Nil(t, result.Report)
	assert.Contains(t, result.Err.Error(), "failed to load document")
	assert.Empty(t, result.Output, "nothing may be printed for a failed run")
}

func TestErrorHandling_CompositionFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		hcl   string
		check func(t *testing.T, err error)
	}{
		{
			name: "model instantiates itself through a definition",
			hcl: `
model "M" {
  comp = true

  submodel "A" {
    model_ref = "D"
  }
}

model_definition "D" {
  submodel "B" {
    model_ref = "E"
  }
}

model_definition "E" {
  submodel "C" {
    model_ref = "D"
  }
}
`,
			check: func(t *testing.T, err error) {
				var cyclic *comp.CyclicCompositionError
				require.True(t, errors.As(err, &cyclic), "got %v", err)
				assert.Equal(t, []string{"M", "D", "E", "D"}, cyclic.Chain)
			},
		},
		{
			name: "flat identifiers collide",
			hcl: `
model "M" {
  comp = true

  parameter "S__x" {}

  submodel "S" {
    model_ref = "D"
  }
}

model_definition "D" {
  species "x" {}
}
`,
			check: func(t *testing.T, err error) {
				var ambiguous *comp.AmbiguousIdentifierError
				require.True(t, errors.As(err, &ambiguous), "got %v", err)
				assert.Equal(t, "S__x", ambiguous.ID)
			},
		},
		{
			name: "submodel refers to a missing definition",
			hcl: `
model "M" {
  comp = true

  submodel "S" {
    model_ref = "nowhere"
  }
}
`,
			check: func(t *testing.T, err error) {
				var unknown *comp.UnknownModelError
				require.True(t, errors.As(err, &unknown), "got %v", err)
				assert.Equal(t, "S", unknown.Submodel)
				assert.Equal(t, "nowhere", unknown.ModelRef)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result, doc := testutil.RunHCLFlattenTest(t, tc.hcl)

			// --- Assert ---
			require.Error(t, result.Err)
			assert.Nil(t, doc)
			assert.Contains(t, result.Err.Error(), "flattening failed")
			tc.check(t, result.Err)
		})
	}
}

// Test for: a reference to a deleted element is reported, not fatal.
func TestErrorHandling_DanglingReferenceIsReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	modelHCL := `
		model "M" {
		  comp = true

		  submodel "S" {
		    model_ref = "D"

		    deletion {
		      id_ref = "k"
		    }
		  }
		}

		model_definition "D" {
		  parameter "k" {}
		  parameter "y" {}

		  assignment_rule {
		    variable = "y"
		    math     = k + 1
		  }
		}
	`

	// --- Act ---
	result, doc := testutil.RunHCLFlattenTest(t, modelHCL)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.NotNil(t, result.Report)
	require.Len(t, result.Report.Diagnostics, 1)
	assert.Contains(t, result.Report.Diagnostics[0], "k")
	assert.Empty(t, doc.Model.Rules, "the rule reading k must be pruned")
}
