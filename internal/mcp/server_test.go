package mcp

import (
	"context"
	"testing"
)

func TestUserIDFromContextDefault(t *testing.T) {
	if id := UserIDFromContext(context.Background()); id != 1 {
		t.Errorf("UserIDFromContext without value = %d, want 1", id)
	}
}

func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 7)
	if id := UserIDFromContext(ctx); id != 7 {
		t.Errorf("UserIDFromContext = %d, want 7", id)
	}
}

func TestDefaultDayRange(t *testing.T) {
	start, end, err := defaultDayRange("2025-01-01", "2025-02-01")
	if err != nil {
		t.Fatalf("defaultDayRange: %v", err)
	}
	if start != "2025-01-01" || end != "2025-02-01" {
		t.Errorf("range = %q..%q", start, end)
	}

	start, end, err = defaultDayRange("", "")
	if err != nil {
		t.Fatalf("defaultDayRange with defaults: %v", err)
	}
	if start == "" || end == "" || start >= end {
		t.Errorf("default range = %q..%q", start, end)
	}

	if _, _, err := defaultDayRange("01/02/2025", ""); err == nil {
		t.Error("defaultDayRange with slash date = nil error, want failure")
	}
}
