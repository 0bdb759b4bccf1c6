package slots

import "testing"

func TestSnapshotStringNormalizesJSONValues(t *testing.T) {
	snap := Snapshot{
		"a": "  hello ",
		"b": float64(3), // integral JSON number
		"c": 7,
		"d": nil,
		"e": true,
	}
	cases := []struct {
		key  string
		want string
	}{
		{"a", "hello"},
		{"b", "3"},
		{"c", "7"},
		{"d", ""},
		{"e", "true"},
		{"missing", ""},
	}
	for _, tc := range cases {
		if got := snap.String(tc.key); got != tc.want {
			t.Fatalf("String(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestSnapshotInt(t *testing.T) {
	snap := Snapshot{
		"f": float64(4),
		"i": 5,
		"s": " 6 ",
		"x": "not a number",
	}
	cases := []struct {
		key  string
		want int
	}{
		{"f", 4}, {"i", 5}, {"s", 6}, {"x", 0}, {"missing", 0},
	}
	for _, tc := range cases {
		if got := snap.Int(tc.key); got != tc.want {
			t.Fatalf("Int(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}
}

func TestSnapshotBool(t *testing.T) {
	snap := Snapshot{"t": true, "f": false, "s": "TRUE", "n": 1}
	if !snap.Bool("t") || snap.Bool("f") || !snap.Bool("s") {
		t.Fatalf("bool accessor misread: %v", snap)
	}
	if snap.Bool("n") || snap.Bool("missing") {
		t.Fatalf("non-bool values must read false")
	}
}

func TestSnapshotHasTreatsEmptyStringAsUnset(t *testing.T) {
	snap := Snapshot{"empty": "  ", "set": "x", "nil": nil, "zero": 0}
	if snap.Has("empty") || snap.Has("nil") || snap.Has("missing") {
		t.Fatalf("unset detection failed: %v", snap)
	}
	if !snap.Has("set") || !snap.Has("zero") {
		t.Fatalf("set detection failed: %v", snap)
	}
}

func TestClearAllCoversEveryOwnedField(t *testing.T) {
	p := ClearAll()
	if len(p) != len(Owned()) {
		t.Fatalf("ClearAll has %d entries, Owned has %d", len(p), len(Owned()))
	}
	for _, f := range Owned() {
		v, ok := p[f]
		if !ok || v != nil {
			t.Fatalf("%s must be cleared", f)
		}
	}
}

func TestDecodePassengers(t *testing.T) {
	got := DecodePassengers(`[{"name":"Alice","phone":"01711111111","email":"a@b.co","seat_preference":"window"}]`)
	if len(got) != 1 || got[0].Name != "Alice" || got[0].SeatPreference != "window" {
		t.Fatalf("decoded = %+v", got)
	}

	// Malformed or empty input restarts the accumulator instead of failing.
	for _, raw := range []string{"", "{broken", "null", "42"} {
		if got := DecodePassengers(raw); len(got) != 0 {
			t.Fatalf("%q: decoded = %+v", raw, got)
		}
	}
}

func TestEncodePassengersRoundTrip(t *testing.T) {
	if EncodePassengers(nil) != EmptyPassengerList {
		t.Fatalf("nil list must encode as %s", EmptyPassengerList)
	}
}
