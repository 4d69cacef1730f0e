package tree

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestPrintGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "decision_tree", []byte(Sprint(sampleTree())))
}

func TestPrintSingleLeaf(t *testing.T) {
	out := Sprint(&Leaf{ParentOk: true, Satisfied: true})
	assert.Equal(t, "└── [RESULT] (parent_met=true) | constraint: yes\n", out)
}

func TestPrintSiblingGlyphs(t *testing.T) {
	out := Sprint(sampleTree())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7, "one line per node")

	// The satisfied branch uses the tee glyph, the last child the corner.
	assert.True(t, strings.HasPrefix(lines[1], "    ├── [UNCOND]"))
	assert.True(t, strings.HasPrefix(lines[4], "    └── [UNCOND]"))
}
