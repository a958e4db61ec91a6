package nxmap_test

import (
	"testing"

	nxmap "github.com/nxharvest/nxmap"
)

func TestInterpretBoolean_Vocabulary(t *testing.T) {
	falsy := []string{"0", "n", "no", "false", "N", "No", "FALSE"}
	for _, s := range falsy {
		b, err := nxmap.InterpretBoolean(s)
		if err != nil || b {
			t.Fatalf("%q: expected false, got %v err=%v", s, b, err)
		}
	}
	truthy := []string{"1", "y", "yes", "true", "Y", "Yes", "TRUE"}
	for _, s := range truthy {
		b, err := nxmap.InterpretBoolean(s)
		if err != nil || !b {
			t.Fatalf("%q: expected true, got %v err=%v", s, b, err)
		}
	}
}

func TestInterpretBoolean_Strict(t *testing.T) {
	for _, v := range []any{"maybe", "2", "", 1.0} {
		if _, err := nxmap.InterpretBoolean(v); err == nil {
			t.Fatalf("%v: expected error", v)
		} else if iss, ok := nxmap.AsIssues(err); !ok || iss[0].Code != nxmap.CodeBadBoolean {
			t.Fatalf("%v: expected bad_boolean issue, got %v", v, err)
		}
	}
}

func TestInterpretBoolean_Passthrough(t *testing.T) {
	if b, err := nxmap.InterpretBoolean(true); err != nil || !b {
		t.Fatalf("bool input should pass through, got %v err=%v", b, err)
	}
}
