package mdlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleNames(violations []Violation) []string {
	var names []string
	for _, v := range violations {
		names = append(names, v.Rule)
	}
	return names
}

func TestLint_CleanDocument(t *testing.T) {
	doc := `---
description: A well-formed agent definition
---
# Title

Intro text.

## Section

### Subsection
`
	violations := Lint(doc, Options{RequireDescription: true})
	assert.Empty(t, violations)
}

func TestLint_MissingFrontmatter(t *testing.T) {
	violations := Lint("# Title\n", Options{})
	require.Len(t, violations, 1)
	assert.Equal(t, RuleFrontmatter, violations[0].Rule)
}

func TestLint_UnclosedFrontmatter(t *testing.T) {
	violations := Lint("---\ndescription: x\n# Title\n", Options{})
	assert.Contains(t, ruleNames(violations), RuleFrontmatter)
}

func TestLint_InvalidYAML(t *testing.T) {
	doc := "---\ndescription: [unclosed\n---\n# Title\n"
	violations := Lint(doc, Options{})
	assert.Contains(t, ruleNames(violations), RuleFrontmatter)
}

func TestLint_RequireDescription(t *testing.T) {
	doc := "---\nname: explorer\n---\n# Title\n"

	violations := Lint(doc, Options{RequireDescription: true})
	assert.Contains(t, ruleNames(violations), RuleAgentFields)

	// Without the requirement the same document is fine.
	violations = Lint(doc, Options{})
	assert.Empty(t, violations)
}

func TestLint_MultipleH1(t *testing.T) {
	doc := "---\na: b\n---\n# One\n\n# Two\n"
	violations := Lint(doc, Options{})
	assert.Contains(t, ruleNames(violations), RuleHeadingCount)
}

func TestLint_NoH1(t *testing.T) {
	doc := "---\na: b\n---\n## Only a section\n"
	violations := Lint(doc, Options{})
	assert.Contains(t, ruleNames(violations), RuleHeadingCount)
}

func TestLint_SkippedHeadingLevel(t *testing.T) {
	doc := "---\na: b\n---\n# Title\n\n### Jumped\n"
	violations := Lint(doc, Options{})
	require.Len(t, violations, 1)
	assert.Equal(t, RuleHeadingLevels, violations[0].Rule)
	assert.Equal(t, 6, violations[0].Line)
}

func TestLint_CodeFencesIgnored(t *testing.T) {
	doc := "---\na: b\n---\n# Title\n\n```sh\n# not a heading\n### nor this\n```\n"
	violations := Lint(doc, Options{})
	assert.Empty(t, violations)
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 1, headingLevel("# a"))
	assert.Equal(t, 3, headingLevel("### a"))
	assert.Equal(t, 0, headingLevel("#nospace"))
	assert.Equal(t, 0, headingLevel("plain"))
	assert.Equal(t, 0, headingLevel("####### seven"))
}
