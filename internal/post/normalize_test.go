package post

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "News", "news"},
		{"trim", "  opinion  ", "opinion"},
		{"collapse whitespace", "local\t\tsports  news", "local sports news"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"News", " news ", "", "Sports"})
	want := []string{"news", "sports"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeAll_Empty(t *testing.T) {
	if got := NormalizeAll([]string{"", "  "}); got != nil {
		t.Errorf("NormalizeAll = %v, want nil", got)
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(StatusPublish) || !ValidStatus(StatusDraft) {
		t.Error("publish/draft should be valid statuses")
	}
	if ValidStatus("pending") {
		t.Error("pending should not be a valid status")
	}
}
