package cmd

import "testing"

func TestSubcommands_Registered(t *testing.T) {
	expected := []string{"snapshot", "find", "resolve", "observe", "wait", "serve"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected %q subcommand to be registered", name)
		}
	}
}

func TestRoot_PersistentFlags(t *testing.T) {
	for _, name := range []string{"format", "pretty", "scene"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}
