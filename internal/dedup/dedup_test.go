package dedup

import "testing"

func TestHash_Normalization(t *testing.T) {
	a := Hash("  Senior   Go   Developer ", "ACME Corp")
	b := Hash("senior go developer", "acme corp")
	if a != b {
		t.Fatalf("hash must be stable across case and whitespace: %s != %s", a, b)
	}

	c := Hash("senior go developer", "other corp")
	if a == c {
		t.Fatalf("different companies must not collide")
	}
}

func TestFilter_Idempotence(t *testing.T) {
	batch := [][2]string{
		{"Go Developer", "Acme"},
		{"Data Engineer", "Acme"},
		{"Go Developer", "Globex"},
	}

	f := NewFilter()

	// First pass: everything distinct is accepted.
	for i, item := range batch {
		if !f.ShouldIngest(item[0], item[1]) {
			t.Fatalf("first pass item %d unexpectedly rejected", i)
		}
	}
	if f.Accepted() != 3 {
		t.Fatalf("expected 3 accepted, got %d", f.Accepted())
	}

	// Second pass over the same batch: everything rejected.
	for i, item := range batch {
		if f.ShouldIngest(item[0], item[1]) {
			t.Fatalf("second pass item %d unexpectedly accepted", i)
		}
	}
	if f.Duplicates() != 3 {
		t.Fatalf("expected 3 duplicates, got %d", f.Duplicates())
	}
}

func TestFilter_RejectsNormalizedDuplicates(t *testing.T) {
	f := NewFilter()
	if !f.ShouldIngest("Go Developer", "Acme") {
		t.Fatalf("first occurrence must be accepted")
	}
	if f.ShouldIngest("  GO   developer ", "acme") {
		t.Fatalf("normalized duplicate must be rejected")
	}
}

func TestFilter_FreshFilterForgetsPriorRun(t *testing.T) {
	f1 := NewFilter()
	f1.ShouldIngest("Go Developer", "Acme")

	// A new ingestion run starts clean.
	f2 := NewFilter()
	if !f2.ShouldIngest("Go Developer", "Acme") {
		t.Fatalf("filters must not share state across runs")
	}
}
