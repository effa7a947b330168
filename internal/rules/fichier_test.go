package rules

import "testing"

func TestValiderFichierRapport(t *testing.T) {
	cases := []struct {
		nom     string
		fichier string
		taille  int64
		valide  bool
	}{
		{"pdf sous la limite", "rapport.pdf", 1024, true},
		{"docx accepté", "rapport_final.docx", 5 * 1024 * 1024, true},
		{"odt accepté", "memoire.odt", 100, true},
		{"extension en majuscules", "RAPPORT.PDF", 1024, true},
		{"taille limite exacte", "rapport.pdf", TailleMaxRapport, true},
		{"un octet de trop", "rapport.pdf", TailleMaxRapport + 1, false},
		{"extension refusée", "rapport.txt", 1024, false},
		{"sans extension", "rapport", 1024, false},
		{"extension refusée et trop gros", "rapport.exe", TailleMaxRapport + 1, false},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			errs := ValiderFichierRapport(c.fichier, c.taille)
			if errs.HasErrors() == c.valide {
				t.Errorf("valide=%v attendu, erreurs obtenues: %v", c.valide, errs)
			}
			if errs.HasErrors() {
				if _, ok := errs["fichier"]; !ok {
					t.Errorf("les erreurs doivent porter sur le champ fichier, obtenu %v", errs)
				}
			}
		})
	}
}

func TestValiderFichierRapport_DeuxErreursCumulees(t *testing.T) {
	errs := ValiderFichierRapport("virus.exe", TailleMaxRapport+1)
	if len(errs["fichier"]) != 2 {
		t.Errorf("format et taille doivent être signalés ensemble, obtenu %v", errs)
	}
}

func TestValiderLettreAcceptation(t *testing.T) {
	cases := []struct {
		nom     string
		fichier string
		taille  int64
		valide  bool
	}{
		{"pdf accepté", "lettre.pdf", 1024, true},
		{"jpeg accepté", "scan.jpeg", 1024, true},
		{"jpg en majuscules", "SCAN.JPG", 1024, true},
		{"png accepté", "lettre.png", TailleMaxLettre, true},
		{"docx refusé pour une lettre", "lettre.docx", 1024, false},
		{"un octet de trop", "lettre.pdf", TailleMaxLettre + 1, false},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			errs := ValiderLettreAcceptation(c.fichier, c.taille)
			if errs.HasErrors() == c.valide {
				t.Errorf("valide=%v attendu, erreurs obtenues: %v", c.valide, errs)
			}
			if errs.HasErrors() {
				if _, ok := errs["lettre_acceptation"]; !ok {
					t.Errorf("les erreurs doivent porter sur lettre_acceptation, obtenu %v", errs)
				}
			}
		})
	}
}
