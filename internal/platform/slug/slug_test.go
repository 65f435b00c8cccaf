package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{in: "Action Plan", want: "action-plan"},
		{in: "  Research ", want: "research"},
		{in: "R&D", want: "r-and-d"},
		{in: "Cathy/Helen", want: "cathy-helen"},
		{in: "???", want: "unnamed"},
	}
	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
