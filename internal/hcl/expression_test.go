package hcl

import (
	"testing"

	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want *formula.Node
	}{
		{
			name: "precedence",
			src:  "a + b * 2",
			want: formula.Op(formula.KindPlus, formula.Name("a"), formula.Op(formula.KindTimes, formula.Name("b"), formula.Number(2))),
		},
		{
			name: "parentheses are dropped",
			src:  "(a + b) * 2",
			want: formula.Op(formula.KindTimes, formula.Op(formula.KindPlus, formula.Name("a"), formula.Name("b")), formula.Number(2)),
		},
		{
			name: "negative literal is folded",
			src:  "-3",
			want: formula.Number(-3),
		},
		{
			name: "negated name",
			src:  "-k",
			want: formula.Op(formula.KindNegate, formula.Name("k")),
		},
		{
			name: "time symbol",
			src:  "time / tau",
			want: formula.Op(formula.KindDivide, formula.Time(), formula.Name("tau")),
		},
		{
			name: "conditional becomes piecewise",
			src:  "x > 1 ? k : 0",
			want: formula.Piecewise(formula.Name("k"), formula.Op(formula.KindGt, formula.Name("x"), formula.Number(1)), formula.Number(0)),
		},
		{
			name: "delay",
			src:  "delay(x, 2)",
			want: formula.Delay(formula.Name("x"), formula.Number(2)),
		},
		{
			name: "power",
			src:  "pow(x, 2)",
			want: formula.Op(formula.KindPower, formula.Name("x"), formula.Number(2)),
		},
		{
			name: "user function",
			src:  "f(a, time)",
			want: formula.Call("f", formula.Name("a"), formula.Time()),
		},
		{
			name: "modulo",
			src:  "a % b",
			want: formula.Call("rem", formula.Name("a"), formula.Name("b")),
		},
		{
			name: "logic",
			src:  "!on && true",
			want: formula.Op(formula.KindAnd, formula.Op(formula.KindNot, formula.Name("on")), formula.Boolean(true)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFormula(tc.src)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestParseFormula_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "attribute access", src: "a.b", wantErr: "attribute and index access"},
		{name: "string literal", src: `"x"`, wantErr: "unsupported expression"},
		{name: "delay arity", src: "delay(x)", wantErr: "delay takes exactly two arguments"},
		{name: "pow arity", src: "pow(x, 1, 2)", wantErr: "pow takes exactly two arguments"},
		{name: "tuple", src: "[1, 2]", wantErr: "unsupported expression"},
		{name: "syntax error", src: "a +", wantErr: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFormula(tc.src)
			require.Error(t, err)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestParseFormula_RenderRoundTrip(t *testing.T) {
	sources := []string{
		"a - (b - c)",
		"a / (b * c)",
		"-(a + b)",
		"pow(a + 1, 2) * k",
		"(x >= 1 ? k1 : k2) + delay(y, t0)",
		"!(a || b)",
		"1.5e-09 * S1",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first, err := ParseFormula(src)
			require.NoError(t, err)
			second, err := ParseFormula(first.String())
			require.NoError(t, err)
			assert.True(t, first.Equal(second), "%q rendered as %q", src, first.String())
		})
	}
}
