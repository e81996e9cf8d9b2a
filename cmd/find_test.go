package cmd

import "testing"

func TestFindCommand_HasExpectedFlags(t *testing.T) {
	expectedFlags := []string{"text", "desc", "type", "id", "exact", "limit"}
	for _, name := range expectedFlags {
		if findCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist on find command", name)
		}
	}
}

func TestFindCriterion_RequiresExactlyOne(t *testing.T) {
	if _, _, err := findCriterion(findCmd); err == nil {
		t.Error("expected an error when no criterion flag is set")
	}

	findCmd.Flags().Set("text", "OK")
	defer findCmd.Flags().Set("text", "")

	field, value, err := findCriterion(findCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(field) != "text" || value != "OK" {
		t.Errorf("expected text criterion OK, got %s=%q", field, value)
	}

	findCmd.Flags().Set("id", "abc123")
	defer findCmd.Flags().Set("id", "")
	if _, _, err := findCriterion(findCmd); err == nil {
		t.Error("expected an error when two criterion flags are set")
	}
}
