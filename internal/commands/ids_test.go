package commands

import (
	"testing"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("task", []string{"42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestParseID_LeadingZeros(t *testing.T) {
	id, err := ParseID("project", []string{"007"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected 7, got %d", id)
	}
}

func TestParseID_Errors(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{nil, "task id required"},
		{[]string{"abc"}, "invalid task id: abc"},
		{[]string{"a1"}, "invalid task id: a1"},
		{[]string{"0"}, "invalid task id: 0"},
		{[]string{"1.5"}, "invalid task id: 1.5"},
		{[]string{"99999999999999999999"}, "invalid task id: 99999999999999999999"},
		{[]string{"٣"}, "invalid task id: ٣"},
		{[]string{"3", "4"}, "unexpected argument: 4"},
	}

	for _, tt := range tests {
		_, err := ParseID("task", tt.args)
		if err == nil {
			t.Errorf("ParseID(%q): expected error", tt.args)
			continue
		}
		if err.Error() != tt.wantErr {
			t.Errorf("ParseID(%q): expected %q, got %q", tt.args, tt.wantErr, err.Error())
		}
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"0", true},
		{"123", true},
		{"12a", false},
		{"-1", false},
		{" 1", false},
	}

	for _, tt := range tests {
		if got := isAllDigits(tt.input); got != tt.want {
			t.Errorf("isAllDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
