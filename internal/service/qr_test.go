package service

import "testing"

func TestExtractCardNo(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "bare card number", raw: "SB-0042", want: "SB-0042", wantOK: true},
		{name: "bare with whitespace", raw: "  SB-0042\n", want: "SB-0042", wantOK: true},
		{name: "activation url", raw: "https://card.schoolbreak.it/activate/SB-0042", want: "SB-0042", wantOK: true},
		{name: "activation url trailing slash", raw: "https://card.schoolbreak.it/activate/SB-0042/", want: "SB-0042", wantOK: true},
		{name: "url without path", raw: "https://card.schoolbreak.it/", wantOK: false},
		{name: "empty", raw: "   ", wantOK: false},
		{name: "free text", raw: "not a card number", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractCardNo(tc.raw)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("card no = %q, want %q", got, tc.want)
			}
		})
	}
}
