package server

import "testing"

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"field": "text", "count": 3.0}
	if got := stringParam(params, "field", "x"); got != "text" {
		t.Errorf("expected text, got %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := stringParam(params, "count", "fallback"); got != "fallback" {
		t.Errorf("expected fallback on type mismatch, got %q", got)
	}
}

func TestIntParam(t *testing.T) {
	params := map[string]interface{}{"limit": 25.0, "name": "x"}
	if got := intParam(params, "limit", 10); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := intParam(params, "missing", 10); got != 10 {
		t.Errorf("expected default, got %d", got)
	}
	if got := intParam(params, "name", 7); got != 7 {
		t.Errorf("expected default on type mismatch, got %d", got)
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"flat": true}
	if !boolParam(params, "flat", false) {
		t.Error("expected true")
	}
	if boolParam(params, "missing", false) {
		t.Error("expected default false")
	}
}
