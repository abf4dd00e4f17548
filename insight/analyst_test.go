package insight

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Verdict
		wantErr bool
	}{
		{
			name: "plain json",
			in:   `{"trigger":true,"direction":"call","confidence":80,"rationale":"engulfing at support"}`,
			want: Verdict{Trigger: true, Direction: "call", Confidence: 80, Rationale: "engulfing at support"},
		},
		{
			name: "fenced json",
			in:   "```json\n{\"trigger\":false,\"confidence\":30,\"rationale\":\"no setup\"}\n```",
			want: Verdict{Confidence: 30, Rationale: "no setup"},
		},
		{name: "not json", in: "the chart looks bullish", wantErr: true},
		{name: "confidence out of range", in: `{"trigger":true,"confidence":250}`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseVerdict(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("want error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if *got != tc.want {
				t.Errorf("got %+v, want %+v", *got, tc.want)
			}
		})
	}
}
