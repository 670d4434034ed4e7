// Package commandline contains helper types for collecting
// command-line arguments.
package commandline

import (
	"fmt"
	"regexp"
	"strings"
)

// A ReplaceRule maps a pattern to its replacement. On the
// command line, ReplaceRules are provided as strings separated
// by "->".
type ReplaceRule struct {
	From *regexp.Regexp
	To   string
}

func (r ReplaceRule) String() string {
	return r.From.String() + " -> " + r.To
}

// A ReplaceRuleList is used to collect multiple replacement rules
// from the command line. It implements the pflag.Value interface.
type ReplaceRuleList []ReplaceRule

func (r *ReplaceRuleList) String() string {
	items := make([]string, len(*r))
	for i, item := range *r {
		items[i] = item.String()
	}
	return strings.Join(items, ", ")
}

// Set adds a replacement rule to the ReplaceRuleList, in the order
// provided on the command line.
func (r *ReplaceRuleList) Set(s string) error {
	rule, err := ParseReplaceRule(s)
	if err != nil {
		return err
	}
	*r = append(*r, rule)
	return nil
}

// Type names the flag's value in help output.
func (r *ReplaceRuleList) Type() string { return "rule" }

// ParseReplaceRule parses a rule in the form "regex -> replacement".
// Space around the arrow is ignored.
func ParseReplaceRule(s string) (ReplaceRule, error) {
	parts := strings.SplitN(s, "->", 2)
	if len(parts) != 2 {
		return ReplaceRule{}, fmt.Errorf("invalid replace rule %q. must be \"regex -> replacement\"", s)
	}
	parts[0] = strings.TrimSpace(parts[0])
	parts[1] = strings.TrimSpace(parts[1])
	reg, err := regexp.Compile(parts[0])
	if err != nil {
		return ReplaceRule{}, fmt.Errorf("invalid regex %q: %v", parts[0], err)
	}
	return ReplaceRule{reg, parts[1]}, nil
}
