package tree

// Category classifies what a constraint node checks.
type Category string

const (
	// CategoryFormat requires the output (or a scoped part) to parse as a
	// specific structural shape, e.g. a JSON object or a markdown section.
	CategoryFormat Category = "specific-format"

	// CategoryNumerical bounds a count: characters, words, sentences,
	// paragraphs, or list length.
	CategoryNumerical Category = "numerical"

	// CategoryLexicalMatch requires presence of an exact string, keyword,
	// or regex match.
	CategoryLexicalMatch Category = "lexical-match"

	// CategoryLexicalExclusion forbids tokens or patterns.
	CategoryLexicalExclusion Category = "lexical-exclusion"

	// CategoryResult marks a leaf. Leaves never appear as Constraint nodes
	// in the model; the constant exists for the exchange format.
	CategoryResult Category = "result"
)

// ValidCategories lists the categories allowed on constraint nodes.
var ValidCategories = map[Category]bool{
	CategoryFormat:           true,
	CategoryNumerical:        true,
	CategoryLexicalMatch:     true,
	CategoryLexicalExclusion: true,
}

// ScopeEntireOutput is the scope value for checks over the whole response.
const ScopeEntireOutput = "entire output"

// Node is one node of a compiled decision tree: either a *Leaf or a
// *Constraint. The private method restricts implementers to this package.
type Node interface {
	node()
}

// Leaf is a terminal verdict node. A Leaf with Satisfied=true corresponds
// to the exchange constraint "yes", false to "no".
type Leaf struct {
	// ParentOk records which branch of the parent this leaf sits on.
	ParentOk bool

	// Satisfied is the verdict this leaf produces when reached.
	Satisfied bool
}

func (*Leaf) node() {}

// Constraint is a non-terminal node carrying one check and two branches.
type Constraint struct {
	// Conditional marks a trigger condition evaluated against the raw
	// input, as opposed to a constraint checked against the output.
	Conditional bool

	// ParentOk records the assumed state of the enclosing condition when
	// this node is reached. The root always carries true.
	ParentOk bool

	// Category classifies the check.
	Category Category

	// Text is the human-readable description of what is checked.
	Text string

	// Source is the prompt sentence this constraint was extracted from.
	Source string

	// Scope names the portion of output the check targets, e.g.
	// "entire output" or "JSON field 'queries'".
	Scope string

	// Pass is taken when the condition holds / the constraint is satisfied
	// (children[0] of the exchange format).
	Pass Node

	// Fail is taken otherwise (children[1]).
	Fail Node
}

func (*Constraint) node() {}

// CountNodes returns the total number of nodes in the tree rooted at n.
func CountNodes(n Node) int {
	switch v := n.(type) {
	case *Leaf:
		return 1
	case *Constraint:
		return 1 + CountNodes(v.Pass) + CountNodes(v.Fail)
	default:
		return 0
	}
}

// Depth returns the length of the longest root-to-leaf path.
func Depth(n Node) int {
	c, ok := n.(*Constraint)
	if !ok {
		return 1
	}
	left := Depth(c.Pass)
	right := Depth(c.Fail)
	if right > left {
		left = right
	}
	return 1 + left
}
