package driver

import "testing"

func TestParseFailureCount(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		failures int
		ok       bool
	}{
		{"all passed", "....\n\nFinished in 0.01 seconds\n4 examples, 0 failures\n", 0, true},
		{"singular", "F\n1 example, 1 failure\n", 1, true},
		{"with pending", "12 examples, 2 failures, 3 pending", 2, true},
		{"last summary wins", "3 examples, 3 failures\n...\n3 examples, 1 failure\n", 1, true},
		{"failures line", "Tests: 5\nFailures: 4\n", 4, true},
		{"no summary", "ReferenceError: foo is not defined", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures, ok := ParseFailureCount(tt.output)
			if failures != tt.failures || ok != tt.ok {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.failures, tt.ok, failures, ok)
			}
		})
	}
}
