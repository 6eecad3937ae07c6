package decomposition

import "strings"

const (
	thisPrefix        = "this."
	statementEnd      = ";\n"
	minAliasGroupSize = 2
)

// AliasGroup is a set of attributes assigned the same right-hand side.
type AliasGroup struct {
	Value      string   `json:"value"      yaml:"value"`
	Attributes []string `json:"attributes" yaml:"attributes"`
}

// Aliases is the ordered result of AliasedAttributes, in first-seen order of
// the assigned values.
type Aliases []AliasGroup

// Lookup returns the attributes aliased to value.
func (a Aliases) Lookup(value string) ([]string, bool) {
	for _, group := range a {
		if group.Value == value {
			return group.Attributes, true
		}
	}

	return nil, false
}

// Values returns the aliased right-hand sides in order.
func (a Aliases) Values() []string {
	values := make([]string, 0, len(a))
	for _, group := range a {
		values = append(values, group.Value)
	}

	return values
}

// AliasedAttributes groups the attributes of leaf statements rendered as
// "this.<attr> = <value>;\n" by identical value. Groups with fewer than two
// attributes are dropped. Statements of any other shape are skipped.
func (c *CompositeStatement) AliasedAttributes() Aliases {
	var groups Aliases

	for _, leaf := range c.Leaves() {
		attribute, value, ok := parseFieldAssignment(leaf.String())
		if !ok {
			continue
		}

		found := false

		for i := range groups {
			if groups[i].Value == value {
				groups[i].Attributes = append(groups[i].Attributes, attribute)
				found = true

				break
			}
		}

		if !found {
			groups = append(groups, AliasGroup{Value: value, Attributes: []string{attribute}})
		}
	}

	result := groups[:0]

	for _, group := range groups {
		if len(group.Attributes) >= minAliasGroupSize {
			result = append(result, group)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

// parseFieldAssignment matches the rendered shape of a field assignment. The
// text must start with "this.", end with ";\n" and carry "=" on its first line.
func parseFieldAssignment(text string) (attribute, value string, ok bool) {
	if !strings.HasPrefix(text, thisPrefix) || !strings.HasSuffix(text, statementEnd) {
		return "", "", false
	}

	firstLine, _, _ := strings.Cut(text, "\n")
	if !strings.Contains(firstLine, "=") {
		return "", "", false
	}

	eq := strings.Index(text, "=")
	end := strings.Index(text, statementEnd)

	if eq < len(thisPrefix) || end <= eq {
		return "", "", false
	}

	attribute = strings.TrimSpace(text[len(thisPrefix):eq])
	value = strings.TrimSpace(text[eq+1 : end])

	if attribute == "" || value == "" {
		return "", "", false
	}

	return attribute, value, true
}
