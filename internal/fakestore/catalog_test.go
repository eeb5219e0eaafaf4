package fakestore

import (
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		expected string
	}{
		{1800, USD, "$1,800.00"},
		{245, USD, "$245.00"},
		{1259.5, USD, "$1,259.50"},
		{1200000, USD, "$1,200,000.00"},
		{0, USD, "$0.00"},
		{1800, EUR, "€1,548.00"},
		{1800, "unknown", "$1,800.00"},
	}

	for _, tt := range tests {
		if got := formatMoney(tt.amount, findCurrency(tt.currency)); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestSearch(t *testing.T) {
	products := DefaultProducts()

	tests := []struct {
		name     string
		filter   SearchFilter
		expected []int
	}{
		{"name match", SearchFilter{Term: "apple"}, []int{1, 7}},
		{"case and spaces", SearchFilter{Term: "  NIKON "}, []int{8}},
		{"no match", SearchFilter{Term: "zzzznoresult"}, nil},
		{"parent category", SearchFilter{Term: "computer", Category: "1", Descriptions: true}, []int{1, 3, 4}},
		{"names only", SearchFilter{Term: "computer", Category: "1"}, []int{3}},
		{"manufacturer and price", SearchFilter{Term: "apple", Manufacturer: "1", PriceFrom: "100", PriceTo: "1000"}, []int{7}},
		{"all category", SearchFilter{Term: "lumia", Category: "0", Manufacturer: "0"}, []int{6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, p := range search(products, tt.filter) {
				got = append(got, p.ID)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestMarkSelected(t *testing.T) {
	opts := markSelected(manufacturers, "3")
	for _, o := range opts {
		if o.Selected != (o.ID == "3") {
			t.Errorf("option %s: expected selected %v", o.ID, o.ID == "3")
		}
	}
	for _, o := range manufacturers {
		if o.Selected {
			t.Errorf("markSelected modified the shared option list")
		}
	}
}
