package rules

import "testing"

func TestFormatMatricule(t *testing.T) {
	cases := []struct {
		annee   int
		numero  int64
		attendu string
	}{
		{2024, 1, "STG-2024-0001"},
		{2024, 42, "STG-2024-0042"},
		{2025, 9999, "STG-2025-9999"},
		{2025, 10000, "STG-2025-10000"},
	}

	for _, c := range cases {
		if got := FormatMatricule(c.annee, c.numero); got != c.attendu {
			t.Errorf("FormatMatricule(%d, %d) = %q, attendu %q", c.annee, c.numero, got, c.attendu)
		}
	}
}

func TestParseMatricule(t *testing.T) {
	annee, numero, ok := ParseMatricule("STG-2024-0042")
	if !ok || annee != 2024 || numero != 42 {
		t.Errorf("ParseMatricule: obtenu (%d, %d, %v)", annee, numero, ok)
	}

	invalides := []string{
		"",
		"STG-2024",
		"ABC-2024-0001",
		"STG-24-0001",
		"STG-2024-00x1",
		"STG-abcd-0001",
	}
	for _, code := range invalides {
		if _, _, ok := ParseMatricule(code); ok {
			t.Errorf("ParseMatricule(%q) aurait dû échouer", code)
		}
	}
}

func TestFormatParseAllerRetour(t *testing.T) {
	code := FormatMatricule(2026, 137)
	annee, numero, ok := ParseMatricule(code)
	if !ok || annee != 2026 || numero != 137 {
		t.Errorf("aller-retour %q: obtenu (%d, %d, %v)", code, annee, numero, ok)
	}
}
