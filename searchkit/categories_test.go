package searchkit

import "testing"

func TestClassifyKnownCategories(t *testing.T) {
	cases := map[string]string{
		"patients": "Patients",
		"staff":    "Staff",
		"visits":   "Visits",
		"scans":    "Scans",
		"products": "Inventory",
	}
	for key, wantLabel := range cases {
		desc := Classify(key)
		if desc.Label != wantLabel {
			t.Errorf("Classify(%q).Label = %q, want %q", key, desc.Label, wantLabel)
		}
		if desc.Icon == "" || desc.Color == "" {
			t.Errorf("Classify(%q) must have icon and color tokens: %+v", key, desc)
		}
	}
}

func TestClassifyUnknownKeyFallsBack(t *testing.T) {
	desc := Classify("lab_orders")
	if desc.Key != "lab_orders" {
		t.Errorf("fallback must keep the raw key, got %q", desc.Key)
	}
	if desc.Label != "Lab_Orders" && desc.Label != "Lab_orders" {
		// x/text title-cases each word; either form proves the re-titling.
		t.Errorf("fallback label should re-title the key, got %q", desc.Label)
	}
	if desc.Icon != defaultIcon || desc.Color != defaultColor {
		t.Errorf("fallback must use the generic tokens, got %+v", desc)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("mystery")
	second := Classify("mystery")
	if first != second {
		t.Errorf("the same key must always map to the same descriptor: %+v vs %+v", first, second)
	}
}
