package driver

import (
	"regexp"
	"strconv"
)

var (
	// "12 examples, 2 failures" / "1 example, 0 failures, 3 pending"
	summaryPattern = regexp.MustCompile(`(\d+)\s+examples?,\s+(\d+)\s+failures?`)
	// "Failures: 2" as printed by some reporters
	failureCountPattern = regexp.MustCompile(`(?m)^\s*Failures:\s*(\d+)`)
)

// ParseFailureCount extracts the failure count from console reporter output.
// The last summary wins so that a retried suite reports its final result.
// ok is false when no summary line was found.
func ParseFailureCount(output string) (failures int, ok bool) {
	if matches := summaryPattern.FindAllStringSubmatch(output, -1); len(matches) > 0 {
		n, err := strconv.Atoi(matches[len(matches)-1][2])
		if err == nil {
			return n, true
		}
	}

	if matches := failureCountPattern.FindAllStringSubmatch(output, -1); len(matches) > 0 {
		n, err := strconv.Atoi(matches[len(matches)-1][1])
		if err == nil {
			return n, true
		}
	}

	return 0, false
}
