package sentence

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "   \n ", want: nil},
		{
			name: "terminal punctuation",
			in:   "Dit is een zin. Is dit er nog een? Ja!",
			want: []string{"Dit is een zin.", "Is dit er nog een?", "Ja!"},
		},
		{
			name: "decimal point stays inside",
			in:   "Het kost 3.50 euro. Dat is veel.",
			want: []string{"Het kost 3.50 euro.", "Dat is veel."},
		},
		{
			name: "single line break is a space",
			in:   "Deze zin loopt\nover twee regels. Klaar.",
			want: []string{"Deze zin loopt over twee regels.", "Klaar."},
		},
		{
			name: "blank line ends a heading",
			in:   "Onderwerp\n\nBeste meneer. Hierbij.",
			want: []string{"Onderwerp", "Beste meneer.", "Hierbij."},
		},
		{
			name: "windows line endings",
			in:   "Een.\r\n\r\nTwee.",
			want: []string{"Een.", "Twee."},
		},
		{
			name: "no trailing punctuation",
			in:   "Met vriendelijke groet",
			want: []string{"Met vriendelijke groet"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Split(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
