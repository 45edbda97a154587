package formula

// Kind discriminates expression nodes.
type Kind int

const (
	KindNumber Kind = iota
	KindBoolean
	KindName
	KindTime
	KindDelay
	KindCall
	KindPlus
	KindMinus
	KindTimes
	KindDivide
	KindPower
	KindNegate
	KindNot
	KindAnd
	KindOr
	KindEq
	KindNeq
	KindLt
	KindLeq
	KindGt
	KindGeq
	KindPiecewise
)

var kindNames = map[Kind]string{
	KindNumber:    "number",
	KindBoolean:   "boolean",
	KindName:      "name",
	KindTime:      "time",
	KindDelay:     "delay",
	KindCall:      "call",
	KindPlus:      "plus",
	KindMinus:     "minus",
	KindTimes:     "times",
	KindDivide:    "divide",
	KindPower:     "power",
	KindNegate:    "negate",
	KindNot:       "not",
	KindAnd:       "and",
	KindOr:        "or",
	KindEq:        "eq",
	KindNeq:       "neq",
	KindLt:        "lt",
	KindLeq:       "leq",
	KindGt:        "gt",
	KindGeq:       "geq",
	KindPiecewise: "piecewise",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// binary operators and their rendering.
var operators = map[Kind]struct {
	symbol     string
	precedence int
}{
	KindOr:     {"||", 1},
	KindAnd:    {"&&", 2},
	KindEq:     {"==", 3},
	KindNeq:    {"!=", 3},
	KindLt:     {"<", 4},
	KindLeq:    {"<=", 4},
	KindGt:     {">", 4},
	KindGeq:    {">=", 4},
	KindPlus:   {"+", 5},
	KindMinus:  {"-", 5},
	KindTimes:  {"*", 6},
	KindDivide: {"/", 6},
}

const (
	precedenceUnary = 7
	precedenceAtom  = 8
)
