package value

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalThreeStates(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		present bool
	}{
		{"null is absent", `null`, false},
		{"empty string is present", `""`, true},
		{"content string is present", `"v"`, true},
		{"number is present", `1`, true},
		{"bool is present", `true`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(c.input), &v); err != nil {
				t.Fatalf("unmarshal %q: %v", c.input, err)
			}
			if v.Present() != c.present {
				t.Fatalf("Present() = %v, want %v", v.Present(), c.present)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, raw := range []string{`null`, `""`, `"v"`, `1`, `"1"`, `true`} {
		var v Value
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatalf("unmarshal %q: %v", raw, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != raw {
			t.Fatalf("round trip %q -> %q", raw, out)
		}
	}
}

func TestEmptyString(t *testing.T) {
	var empty, content, null Value
	mustUnmarshal(t, &empty, `""`)
	mustUnmarshal(t, &content, `"v"`)
	mustUnmarshal(t, &null, `null`)

	if !empty.EmptyString() {
		t.Fatalf("expected empty string to report EmptyString")
	}
	if content.EmptyString() {
		t.Fatalf("content value should not report EmptyString")
	}
	if null.EmptyString() {
		t.Fatalf("absent value should not report EmptyString")
	}
}

func TestEqualTypePreservation(t *testing.T) {
	var asInt, asString Value
	mustUnmarshal(t, &asInt, `1`)
	mustUnmarshal(t, &asString, `"1"`)

	if Equal(asInt, asString) {
		t.Fatalf("integer 1 and string \"1\" must not compare equal")
	}

	var anotherInt Value
	mustUnmarshal(t, &anotherInt, `1`)
	if !Equal(asInt, anotherInt) {
		t.Fatalf("two encodings of integer 1 must compare equal")
	}
}

func mustUnmarshal(t *testing.T, v *Value, raw string) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
}
