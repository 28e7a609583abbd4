// Package mdlint validates the structure of markdown files the hooks care
// about: YAML frontmatter shape and heading hierarchy.
package mdlint

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Violation is one structural problem found in a markdown document.
type Violation struct {
	Line    int
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("line %d: %s: %s", v.Line, v.Rule, v.Message)
}

// Rule names reported in violations.
const (
	RuleFrontmatter   = "frontmatter"
	RuleHeadingCount  = "heading-count"
	RuleHeadingLevels = "heading-levels"
	RuleAgentFields   = "agent-fields"
)

// Options configures a lint run.
type Options struct {
	// RequireDescription demands a `description` frontmatter key. Set for
	// agent definition files under .claude/agents/.
	RequireDescription bool
}

// LintFile reads and lints a markdown file.
func LintFile(path string, opts Options) ([]Violation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Lint(string(data), opts), nil
}

// Lint checks one markdown document and returns every violation found.
func Lint(content string, opts Options) []Violation {
	var violations []Violation

	body, bodyStart, fmViolations := checkFrontmatter(content, opts)
	violations = append(violations, fmViolations...)
	violations = append(violations, checkHeadings(body, bodyStart)...)

	return violations
}

// checkFrontmatter validates the leading YAML block and returns the document
// body with the line number it starts on.
func checkFrontmatter(content string, opts Options) (body string, bodyStart int, violations []Violation) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		violations = append(violations, Violation{
			Line:    1,
			Rule:    RuleFrontmatter,
			Message: "document must start with a `---` frontmatter fence",
		})
		return content, 1, violations
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		violations = append(violations, Violation{
			Line:    1,
			Rule:    RuleFrontmatter,
			Message: "frontmatter fence is never closed",
		})
		return content, 1, violations
	}

	raw := strings.Join(lines[1:end], "\n")
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		violations = append(violations, Violation{
			Line:    2,
			Rule:    RuleFrontmatter,
			Message: fmt.Sprintf("frontmatter is not valid YAML: %v", err),
		})
	} else if opts.RequireDescription {
		if desc, ok := fields["description"].(string); !ok || strings.TrimSpace(desc) == "" {
			violations = append(violations, Violation{
				Line:    2,
				Rule:    RuleAgentFields,
				Message: "agent definition frontmatter requires a non-empty `description`",
			})
		}
	}

	return strings.Join(lines[end+1:], "\n"), end + 2, violations
}

// checkHeadings enforces exactly one H1 and no skipped heading levels.
// Headings inside fenced code blocks are ignored.
func checkHeadings(body string, startLine int) []Violation {
	var violations []Violation

	h1Count := 0
	prevLevel := 0
	inFence := false

	for i, line := range strings.Split(body, "\n") {
		lineNo := startLine + i
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level := headingLevel(line)
		if level == 0 {
			continue
		}

		if level == 1 {
			h1Count++
			if h1Count > 1 {
				violations = append(violations, Violation{
					Line:    lineNo,
					Rule:    RuleHeadingCount,
					Message: "document has more than one H1",
				})
			}
		}

		if prevLevel > 0 && level > prevLevel+1 {
			violations = append(violations, Violation{
				Line:    lineNo,
				Rule:    RuleHeadingLevels,
				Message: fmt.Sprintf("heading level jumps from H%d to H%d", prevLevel, level),
			})
		}
		prevLevel = level
	}

	if h1Count == 0 {
		violations = append(violations, Violation{
			Line:    startLine,
			Rule:    RuleHeadingCount,
			Message: "document has no H1",
		})
	}

	return violations
}

// headingLevel returns the ATX heading level of a line, 0 for non-headings.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}
