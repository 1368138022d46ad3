package domain

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Category
	}{
		{name: "Current value", raw: "news", expected: CategoryNews},
		{name: "Uppercase current value", raw: "Tutorial", expected: CategoryTutorial},
		{name: "Legacy artigo", raw: "Artigo", expected: CategoryArticle},
		{name: "Legacy noticia", raw: "NOTICIA", expected: CategoryNews},
		{name: "Legacy accented noticia", raw: "Notícia", expected: CategoryNews},
		{name: "Legacy entrevista", raw: "entrevista", expected: CategoryInterview},
		{name: "Unknown kept lowercased", raw: "Opinion", expected: Category("opinion")},
		{name: "Surrounding whitespace", raw: "  interview ", expected: CategoryInterview},
		{name: "Empty", raw: "", expected: Category("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeCategory(tt.raw)
			if result != tt.expected {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestCategory_ValidAndLabel(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
		if c.Label() == string(c) {
			t.Errorf("%q has no display label", c)
		}
	}

	unknown := Category("opinion")
	if unknown.Valid() {
		t.Error("unknown category reported as valid")
	}
	if unknown.Label() != "opinion" {
		t.Errorf("Label() = %q, want raw value", unknown.Label())
	}
	if Category("").Valid() {
		t.Error("empty category reported as valid")
	}
}
