// pkg/escp/spacing.go
package escp

import "fmt"

// maxSpacingNumerator bounds numerators before they are scaled to a unit
const maxSpacingNumerator = 1 << 16

// spacingRule is one line spacing command. A rule with fixed set accepts
// exactly fixed/unit inch and takes no parameter; otherwise it takes one
// byte n for n/unit inch, 0 <= n <= max.
type spacingRule struct {
	cmd   Command
	unit  int
	fixed int
	max   int
}

// resolveSpacing picks the first rule that can express num/den inch exactly
func resolveSpacing(v Variant, num, den int) (Command, []byte, error) {
	if den <= 0 || num < 0 || num > maxSpacingNumerator {
		return 0, nil, fmt.Errorf("%w: %d/%d inch", ErrUnsupportedSpacing, num, den)
	}

	for _, rule := range v.spacingRules() {
		scaled := num * rule.unit
		if scaled%den != 0 {
			continue
		}
		n := scaled / den

		if rule.fixed > 0 {
			if n == rule.fixed {
				return rule.cmd, nil, nil
			}
			continue
		}
		if n <= rule.max {
			return rule.cmd, []byte{byte(n)}, nil
		}
	}

	return 0, nil, fmt.Errorf("%w: %d/%d inch on %v", ErrUnsupportedSpacing, num, den, v)
}
