package formula

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Names returns the distinct identifiers referenced by n, in first-seen order.
// Function call names are not included.
func Names(n *Node) []string {
	var out []string
	seen := map[string]struct{}{}
	Walk(n, func(x *Node) bool {
		if x.Kind == KindName {
			if _, ok := seen[x.Name]; !ok {
				seen[x.Name] = struct{}{}
				out = append(out, x.Name)
			}
		}
		return true
	})
	return out
}

// Mentions reports whether n references any of the given identifiers.
func Mentions(n *Node, ids map[string]struct{}) bool {
	found := false
	Walk(n, func(x *Node) bool {
		if found {
			return false
		}
		if x.Kind == KindName {
			if _, ok := ids[x.Name]; ok {
				found = true
			}
		}
		return !found
	})
	return found
}
