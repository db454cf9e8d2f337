package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsDuplicateDatabase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duplicate database", &pq.Error{Code: "42P04"}, true},
		{"wrapped duplicate", fmt.Errorf("create: %w", &pq.Error{Code: "42P04"}), true},
		{"insufficient privilege", &pq.Error{Code: "42501"}, false},
		{"plain error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateDatabase(tt.err); got != tt.want {
				t.Errorf("isDuplicateDatabase(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
