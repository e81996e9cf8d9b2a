package cmd

import "testing"

func TestWaitCommand_HasExpectedFlags(t *testing.T) {
	expectedFlags := []string{"idle", "for-text", "gone", "timeout", "interval"}
	for _, name := range expectedFlags {
		if waitCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist on wait command", name)
		}
	}
}

func TestDescribeWaitCondition(t *testing.T) {
	cases := []struct {
		idle    int
		forText string
		gone    bool
		want    string
	}{
		{3, "", false, "idle x3"},
		{0, "Done", false, `text "Done"`},
		{0, "Loading", true, `text "Loading" gone`},
		{2, "Done", false, `idle x2 and text "Done"`},
	}
	for _, c := range cases {
		if got := describeWaitCondition(c.idle, c.forText, c.gone); got != c.want {
			t.Errorf("describeWaitCondition(%d, %q, %v) = %q, want %q", c.idle, c.forText, c.gone, got, c.want)
		}
	}
}
