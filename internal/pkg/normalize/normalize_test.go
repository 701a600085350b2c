package normalize

import (
	"testing"

	"edanalyzer/internal/pkg/models"
)

func TestClassifyStatusTotality(t *testing.T) {
	cases := []struct {
		status models.StatusCode
		want   LinkState
	}{
		{"200", StateOK},
		{"204", StateOK},
		{"301", StateOK},
		{"399", StateOK},
		{"400", StateFail},
		{"404", StateFail},
		{"500", StateFail},
		{"599", StateFail},
		{"100", StateFail},
		{"199", StateFail},
		{"099", StateFail},
		{"700", StateFail},
		{"-1", StateFail},
		{"ERROR [Timeout]", StateFail},
		{"ok", StateFail},
		{"", StateFail},
		{" 200 ", StateOK},
	}
	for _, c := range cases {
		if got := ClassifyStatus(c.status); got != c.want {
			t.Errorf("Expected %q to classify as %s, got %s", c.status, c.want, got)
		}
	}
}

func TestDedupByKeepsFirstSeen(t *testing.T) {
	links := []models.LinkFact{
		{URL: "https://a.example/", Status: "200"},
		{URL: "https://b.example/", Status: "404"},
		{URL: "https://a.example/", Status: "500"},
	}
	out := DedupBy(links, func(l models.LinkFact) string { return l.URL })
	if len(out) != 2 {
		t.Fatalf("Expected 2 deduplicated links, got %d", len(out))
	}
	if out[0].URL != "https://a.example/" || out[0].Status != "200" {
		t.Errorf("Expected the first-seen status to survive, got %+v", out[0])
	}
	if out[1].URL != "https://b.example/" {
		t.Errorf("Expected first-seen order to be preserved, got %+v", out[1])
	}
}

func TestDedupStringsFold(t *testing.T) {
	out := DedupStringsFold([]string{"GND", "gnd", "VIAF", "Gnd"})
	if len(out) != 2 {
		t.Fatalf("Expected 2 entries, got %v", out)
	}
	if out[0] != "GND" || out[1] != "VIAF" {
		t.Errorf("Expected the first spelling to win, got %v", out)
	}
}

func TestFlattenText(t *testing.T) {
	payload := map[string]any{
		"host": map[string]any{
			"provider": "Hetzner",
			"tags":     []any{"Docker", 42},
		},
		"references": map[string]any{"skipped": "Kubernetes"},
	}
	got := FlattenText(payload, "references")
	if got != "hetzner | docker | 42" {
		t.Errorf("Expected flattened lowercase text without skipped keys, got %q", got)
	}
}

func TestFlattenTextDeterministic(t *testing.T) {
	payload := map[string]any{"b": "two", "a": "one", "c": "three"}
	first := FlattenText(payload)
	for i := 0; i < 10; i++ {
		if got := FlattenText(payload); got != first {
			t.Fatalf("Expected deterministic output, got %q then %q", first, got)
		}
	}
	if first != "one | two | three" {
		t.Errorf("Expected sorted-key traversal order, got %q", first)
	}
}

func TestPresent(t *testing.T) {
	if Present("  ") {
		t.Error("Expected whitespace to count as absent")
	}
	if !Present(" x ") {
		t.Error("Expected non-empty trimmed text to count as present")
	}
	if AnyPresent([]string{"", "  "}) {
		t.Error("Expected all-blank list to count as absent")
	}
	if !AnyPresent([]string{"", "value"}) {
		t.Error("Expected list with one value to count as present")
	}
}

func TestMatchTechName(t *testing.T) {
	refs := []string{"Jekyll", "Next.js", "GitHub Pages"}

	if _, ok := MatchTechName("Jekyll Admin", refs); !ok {
		t.Error("Expected token superset to match")
	}
	if ref, ok := MatchTechName("next.js", refs); !ok || ref != "Next.js" {
		t.Errorf("Expected punctuation-insensitive match, got %q %v", ref, ok)
	}
	if _, ok := MatchTechName("jekyllish", refs); ok {
		t.Error("Expected partial-token name not to match")
	}
	if _, ok := MatchTechName("Pages", refs); ok {
		t.Error("Expected a subset of reference tokens not to match")
	}
}

func TestStripQueryFragment(t *testing.T) {
	got := StripQueryFragment("https://edition.example/doc.xml?download=1#top")
	if got != "https://edition.example/doc.xml" {
		t.Errorf("Expected query and fragment stripped, got %q", got)
	}
}

func TestCanonicalURL(t *testing.T) {
	got := CanonicalURL(" HTTPS://Edition.Example/Path#frag ")
	if got != "https://edition.example/Path" {
		t.Errorf("Expected lowercase scheme+host and no fragment, got %q", got)
	}
	if CanonicalURL("not a url") != "not a url" {
		t.Errorf("Expected unparsable input returned trimmed")
	}
}
