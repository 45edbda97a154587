package formula

import (
	"math"
	"strconv"
	"strings"
)

// String renders n as a native HCL expression.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) precedence() int {
	if op, ok := operators[n.Kind]; ok {
		return op.precedence
	}
	switch n.Kind {
	case KindNegate, KindNot:
		return precedenceUnary
	case KindPiecewise:
		return 0
	case KindNumber:
		if n.Value < 0 {
			return precedenceUnary
		}
	}
	return precedenceAtom
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case KindNumber:
		sb.WriteString(formatNumber(n.Value))
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(n.Bool))
	case KindName:
		sb.WriteString(n.Name)
	case KindTime:
		sb.WriteString("time")
	case KindDelay:
		writeCall(sb, "delay", n.Children)
	case KindPower:
		writeCall(sb, "pow", n.Children)
	case KindCall:
		writeCall(sb, n.Name, n.Children)
	case KindNegate, KindNot:
		if n.Kind == KindNegate {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('!')
		}
		writeOperand(sb, n.Child(0), precedenceUnary, true)
	case KindPiecewise:
		sb.WriteByte('(')
		n.Child(1).write(sb)
		sb.WriteString(" ? ")
		n.Child(0).write(sb)
		sb.WriteString(" : ")
		n.Child(2).write(sb)
		sb.WriteByte(')')
	default:
		op, ok := operators[n.Kind]
		if !ok {
			sb.WriteString("<invalid>")
			return
		}
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(' ')
				sb.WriteString(op.symbol)
				sb.WriteByte(' ')
			}
			writeOperand(sb, c, op.precedence, i > 0)
		}
	}
}

// writeOperand parenthesizes c when it binds looser than the parent operator,
// or equally loose on the right-hand side (a - (b - c), a / (b * c)).
func writeOperand(sb *strings.Builder, c *Node, parent int, right bool) {
	p := c.precedence()
	if p < parent || (right && p == parent) {
		sb.WriteByte('(')
		c.write(sb)
		sb.WriteByte(')')
		return
	}
	c.write(sb)
}

func writeCall(sb *strings.Builder, name string, args []*Node) {
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.write(sb)
	}
	sb.WriteByte(')')
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
