package ops

import (
	"context"
	"testing"
)

func TestProgressRoundTrip(t *testing.T) {
	var got []string
	ctx := WithProgress(context.Background(), func(m string) { got = append(got, m) })
	report := progressFrom(ctx)
	report("one")
	report("two")
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("messages = %v", got)
	}
}

func TestProgressNoop(t *testing.T) {
	// Without a callback attached the reporter must be callable.
	report := progressFrom(context.Background())
	report("dropped")
}
