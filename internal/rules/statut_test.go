package rules

import (
	"testing"
	"time"

	"github.com/TisTos-tass3/StagINS/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculerStatutStage(t *testing.T) {
	debut := date(2024, 1, 1)
	fin := date(2024, 3, 1)

	cases := []struct {
		nom           string
		today         time.Time
		rapportValide bool
		attendu       string
	}{
		{"en cours au milieu du stage", date(2024, 2, 1), false, model.StatutEnCours},
		{"en cours le dernier jour", date(2024, 3, 1), false, model.StatutEnCours},
		{"terminé le lendemain de la fin", date(2024, 3, 2), false, model.StatutTermine},
		{"terminé bien après la fin", date(2024, 6, 1), false, model.StatutTermine},
		// Un stage pas encore commencé est classé En cours, pas d'état dédié.
		{"futur classé en cours", date(2023, 12, 1), false, model.StatutEnCours},
		{"rapport validé prime sur les dates", date(2024, 6, 1), true, model.StatutValide},
		{"rapport validé avant le début", date(2023, 12, 1), true, model.StatutValide},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			statut := CalculerStatutStage(c.today, debut, fin, c.rapportValide)
			if statut != c.attendu {
				t.Errorf("statut attendu %q, obtenu %q", c.attendu, statut)
			}
		})
	}
}

func TestCalculerStatutStage_IgnoreHeure(t *testing.T) {
	// La comparaison se fait sur la date civile, pas sur l'instant.
	today := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	statut := CalculerStatutStage(today, date(2024, 1, 1), date(2024, 3, 1), false)
	if statut != model.StatutEnCours {
		t.Errorf("le dernier jour reste En cours quelle que soit l'heure, obtenu %q", statut)
	}
}

func TestChevauchent(t *testing.T) {
	cases := []struct {
		nom                        string
		debutA, finA, debutB, finB time.Time
		attendu                    bool
	}{
		{"recouvrement partiel", date(2024, 1, 1), date(2024, 3, 1), date(2024, 2, 1), date(2024, 4, 1), true},
		{"inclusion totale", date(2024, 1, 1), date(2024, 6, 1), date(2024, 2, 1), date(2024, 3, 1), true},
		{"périodes identiques", date(2024, 1, 1), date(2024, 3, 1), date(2024, 1, 1), date(2024, 3, 1), true},
		{"périodes disjointes", date(2024, 1, 1), date(2024, 2, 1), date(2024, 3, 1), date(2024, 4, 1), false},
		// Intervalle semi-ouvert : enchaîner deux stages bout à bout est permis.
		{"enchaînement exact", date(2024, 1, 1), date(2024, 3, 1), date(2024, 3, 1), date(2024, 4, 1), false},
		{"lendemain de la fin", date(2024, 1, 1), date(2024, 3, 1), date(2024, 3, 2), date(2024, 4, 1), false},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			if got := Chevauchent(c.debutA, c.finA, c.debutB, c.finB); got != c.attendu {
				t.Errorf("attendu %v, obtenu %v", c.attendu, got)
			}
			// Le test est symétrique.
			if got := Chevauchent(c.debutB, c.finB, c.debutA, c.finA); got != c.attendu {
				t.Errorf("symétrie: attendu %v, obtenu %v", c.attendu, got)
			}
		})
	}
}
