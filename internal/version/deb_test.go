package version

import "testing"

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.00", 0},
		{"1.2.3-4", "1.2.3+4", -1},
		{"1:0", "9", 1},
		{"1.0~rc1", "1.0", -1},
		{"1.0", "1.0~rc1", 1},
		{"1.0", "1.0", 0},
		{"2.0", "1.0", 1},
		{"1.0-1", "1.0-2", -1},
		{"1.0", "1.0-1", -1}, // no revision sorts as empty revision, less than "1"
	}
	for _, tc := range cases {
		got, err := Compare(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Compare(%q, %q): %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParseEpochUpstreamRevision(t *testing.T) {
	d, err := Parse("2:1.2.3-4")
	if err != nil {
		t.Fatal(err)
	}
	if d.Epoch != 2 || d.Upstream != "1.2.3" || d.Revision != "4" {
		t.Errorf("got %+v", d)
	}

	d, err = Parse("1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if d.Epoch != 0 || d.Upstream != "1.2.3" || d.Revision != "" {
		t.Errorf("got %+v", d)
	}
}
