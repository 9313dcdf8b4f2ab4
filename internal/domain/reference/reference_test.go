package reference

import "testing"

func TestLookup_KnownLesion(t *testing.T) {
	info, ok := Lookup("Melanoma")
	if !ok {
		t.Fatal("expected Melanoma to be known")
	}
	if info.Description == "" || info.Symptoms == "" || info.Actions == "" ||
		info.Treatment == "" || info.Prevention == "" || info.Link == "" {
		t.Errorf("expected every field populated, got %+v", info)
	}
}

func TestLookup_UnknownFallsBack(t *testing.T) {
	info, ok := Lookup("Something Else")
	if ok {
		t.Fatal("expected unknown lesion to report ok=false")
	}
	if info != Fallback() {
		t.Errorf("expected fallback entry, got %+v", info)
	}
	if info.Link != "https://www.aad.org/public/everyday-care/skin-care-basics" {
		t.Errorf("unexpected fallback link: %s", info.Link)
	}
}

func TestNames_CoversAllClasses(t *testing.T) {
	want := map[string]bool{
		"Actinic Keratoses":    true,
		"Benign Keratosis":     true,
		"Melanoma":             true,
		"Melanocytic Nevi":     true,
		"Basal Cell Carcinoma": true,
	}
	names := Names()
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected name %q", n)
		}
		if !Known(n) {
			t.Errorf("Known(%q) = false", n)
		}
	}
}

func TestSpecialist(t *testing.T) {
	doc := Specialist()
	if doc.Name != "Dr. Anandi Gopal Joshi" {
		t.Errorf("unexpected name: %s", doc.Name)
	}
	if doc.Email != "dr.anandi@apollo.com" {
		t.Errorf("unexpected email: %s", doc.Email)
	}
}
