package site

import (
	"fmt"
	"regexp"
)

// RuleMatches reports which source files a rule would process.
type RuleMatches struct {
	Rule    string
	Pattern string
	Paths   []string
}

// Discover evaluates every rule's pattern against the source listing without
// parsing or rendering anything.
func (b *Builder) Discover() ([]RuleMatches, error) {
	results := make([]RuleMatches, 0, len(b.cfg.Rules))
	for _, rule := range b.cfg.Rules {
		pattern, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compile pattern: %w", rule.Name, err)
		}
		matches, err := b.lister.FindByPattern(pattern)
		if err != nil {
			return nil, err
		}
		rm := RuleMatches{Rule: rule.Name, Pattern: rule.Pattern}
		for _, m := range matches {
			rm.Paths = append(rm.Paths, m.Path)
		}
		results = append(results, rm)
	}
	return results, nil
}
