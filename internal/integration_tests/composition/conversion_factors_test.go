package integration_tests

import (
	"testing"

	"github.com/specialistvlad/compflat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: time and extent conversion factors scaling a kinetic law, alone
// and together.
func TestComposition_ExtentAndTimeFactors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		factors  string
		expected string
	}{
		{
			name:     "extent only",
			factors:  `extent_conversion_factor = "ef"`,
			expected: "S__k * S__x * ef",
		},
		{
			name:     "time only",
			factors:  `time_conversion_factor = "tf"`,
			expected: "S__k * S__x * (1 / tf)",
		},
		{
			name: "both",
			factors: `extent_conversion_factor = "ef"
    time_conversion_factor   = "tf"`,
			expected: "S__k * S__x * (ef / tf)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			modelHCL := `
model "M" {
  comp = true

  parameter "ef" {
    value = 1000
  }

  parameter "tf" {
    value = 60
  }

  submodel "S" {
    model_ref = "D"
    ` + tc.factors + `
  }
}

model_definition "D" {
  species "x" {
    conversion_factor = "cf"
  }

  parameter "k" {}
  parameter "cf" {}

  reaction "r" {
    reactant {
      species = "x"
    }

    kinetic_law {
      math = k * x
    }
  }
}
`

			// --- Act ---
			result, doc := testutil.RunHCLFlattenTest(t, modelHCL)

			// --- Assert ---
			require.NoError(t, result.Err)
			testutil.AssertNoDiagnostics(t, result)
			require.Len(t, doc.Model.Reactions, 1)
			assert.Equal(t, tc.expected, doc.Model.Reactions[0].KineticLaw.Math.String())
			require.Len(t, doc.Model.Species, 1)
			assert.Equal(t, "S__cf", doc.Model.Species[0].ConversionFactor)
		})
	}
}

// Test for: event triggers and delays following the time conversion factor.
func TestComposition_EventsFollowTimeFactor(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	modelHCL := `
		model "M" {
		  comp = true

		  parameter "tau" {
		    value = 60
		  }

		  submodel "S" {
		    model_ref              = "D"
		    time_conversion_factor = "tau"
		  }
		}

		model_definition "D" {
		  parameter "x" {}

		  event "pulse" {
		    trigger {
		      math = time > 5
		    }

		    delay {
		      math = 2
		    }

		    event_assignment {
		      variable = "x"
		      math     = 1
		    }
		  }
		}
	`

	// --- Act ---
	result, doc := testutil.RunHCLFlattenTest(t, modelHCL)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, doc.Model.Events, 1)
	ev := doc.Model.Events[0]
	assert.Equal(t, "S__pulse", ev.ID)
	require.NotNil(t, ev.Trigger)
	assert.Equal(t, "time / tau > 5", ev.Trigger.Math.String())
	require.NotNil(t, ev.Delay)
	assert.Equal(t, "2 * tau", ev.Delay.Math.String())
	require.Len(t, ev.Assignments, 1)
	assert.Equal(t, "S__x", ev.Assignments[0].Variable)
}
