package catalog

import "testing"

func TestClassifyDefaults(t *testing.T) {
	tests := []struct {
		in           string
		wantKind     Kind
		wantKeywords string
	}{
		{in: "", wantKind: KindPackage, wantKeywords: ""},
		{in: "   ", wantKind: KindPackage, wantKeywords: ""},
		{in: "soft light, editorial", wantKind: KindPackage, wantKeywords: "soft light, editorial"},
		{in: "package_type:garbage|foo", wantKind: KindPackage, wantKeywords: "foo"},
		{in: "package_type:", wantKind: KindPackage, wantKeywords: ""},
	}

	for _, tt := range tests {
		kind, keywords := Classify(tt.in)
		if kind != tt.wantKind || keywords != tt.wantKeywords {
			t.Fatalf("Classify(%q) = (%q, %q), want (%q, %q)", tt.in, kind, keywords, tt.wantKind, tt.wantKeywords)
		}
	}
}

func TestClassifyLegacyExperienceSynonym(t *testing.T) {
	kind, keywords := Classify("package_type:experience|foo")
	if kind != KindPackage {
		t.Fatalf("expected legacy experience tag to map to package, got %q", kind)
	}
	if keywords != "foo" {
		t.Fatalf("expected keywords %q, got %q", "foo", keywords)
	}
}

func TestClassifyEncodeRoundTrip(t *testing.T) {
	kinds := []Kind{KindPackage, KindEnhancement, KindMotion}
	keywordSets := []string{"", "bridal", "soft light, editorial", "fine art  "}

	for _, k := range kinds {
		for _, kw := range keywordSets {
			gotKind, gotKeywords := Classify(Encode(k, kw))
			if gotKind != k {
				t.Fatalf("round trip kind mismatch: encoded %q, decoded %q", k, gotKind)
			}
			trimmed := kw
			for len(trimmed) > 0 && trimmed[len(trimmed)-1] == ' ' {
				trimmed = trimmed[:len(trimmed)-1]
			}
			if gotKeywords != trimmed {
				t.Fatalf("round trip keywords mismatch for kind %q: got %q, want %q", k, gotKeywords, trimmed)
			}
		}
	}
}

func TestClassifyTagNotAtStart(t *testing.T) {
	kind, keywords := Classify("moody package_type:motion|cinematic")
	if kind != KindMotion {
		t.Fatalf("expected motion, got %q", kind)
	}
	if keywords != "moody cinematic" {
		t.Fatalf("expected keywords %q, got %q", "moody cinematic", keywords)
	}
}

func TestValidKind(t *testing.T) {
	for _, s := range []string{"package", "enhancement", "motion"} {
		if !ValidKind(s) {
			t.Fatalf("expected %q to be a valid kind", s)
		}
	}
	for _, s := range []string{"", "experience", "Package", "video"} {
		if ValidKind(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}
