package grocery

import "testing"

func TestPluralizeUnit(t *testing.T) {
	tests := []struct {
		qty  int
		unit string
		want string
	}{
		{1, "unidad", "1 Unidad"},
		{3, "unidad", "3 Unidades"},
		{2, "kg", "2 kg"},
		{1, "kg", "1 Kg"},
		{5, "L", "5 L"},
		{2, "botella", "2 Botellas"},
		{4, "pieza", "4 Piezas"},
		{2, "docena", "2 Docenas"},
		{1, "", "1 "},
	}
	for _, tt := range tests {
		got := PluralizeUnit(tt.qty, tt.unit)
		if got != tt.want {
			t.Errorf("PluralizeUnit(%d, %q) = %q, want %q", tt.qty, tt.unit, got, tt.want)
		}
	}
}

func TestPluralizeCoversEveryUnit(t *testing.T) {
	for _, u := range Units {
		if _, ok := pluralUnits[u]; !ok {
			t.Errorf("unit %q has no plural form", u)
		}
	}
}
