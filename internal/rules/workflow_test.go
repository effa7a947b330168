package rules

import (
	"testing"

	"github.com/TisTos-tass3/StagINS/internal/model"
)

func TestValiderWorkflowRapport(t *testing.T) {
	cases := []struct {
		nom     string
		etat    string
		action  string
		attendu bool
	}{
		{"valider un rapport en attente", model.EtatEnAttente, ActionValider, true},
		{"valider un rapport déjà validé", model.EtatValide, ActionValider, false},
		{"valider un rapport archivé", model.EtatArchive, ActionValider, false},
		{"archiver un rapport validé", model.EtatValide, ActionArchiver, true},
		{"archiver un rapport en attente", model.EtatEnAttente, ActionArchiver, false},
		{"archiver un rapport archivé", model.EtatArchive, ActionArchiver, false},
		{"action inconnue", model.EtatEnAttente, "rejeter", false},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			ok, motif := ValiderWorkflowRapport(c.etat, c.action)
			if ok != c.attendu {
				t.Errorf("attendu %v, obtenu %v (motif %q)", c.attendu, ok, motif)
			}
			if !ok && motif == "" {
				t.Error("un refus doit porter un motif")
			}
		})
	}
}

func TestPeutModifierRapport(t *testing.T) {
	if !PeutModifierRapport(model.EtatEnAttente) {
		t.Error("un rapport en attente doit être modifiable")
	}
	if PeutModifierRapport(model.EtatValide) {
		t.Error("un rapport validé ne doit pas être modifiable")
	}
	if PeutModifierRapport(model.EtatArchive) {
		t.Error("un rapport archivé ne doit pas être modifiable")
	}
}

func TestPeutSupprimerRapport(t *testing.T) {
	if ok, _ := PeutSupprimerRapport(model.EtatEnAttente); !ok {
		t.Error("un rapport en attente doit être supprimable")
	}
	for _, etat := range []string{model.EtatValide, model.EtatArchive} {
		ok, motif := PeutSupprimerRapport(etat)
		if ok {
			t.Errorf("un rapport %s ne doit pas être supprimable", etat)
		}
		if motif == "" {
			t.Error("un refus doit porter un motif")
		}
	}
}

func TestPeutModifierStage(t *testing.T) {
	cases := []struct {
		nom     string
		etats   []string
		attendu bool
	}{
		{"sans rapport", nil, true},
		{"rapport en attente", []string{model.EtatEnAttente}, true},
		{"rapport validé", []string{model.EtatValide}, false},
		{"rapport archivé", []string{model.EtatArchive}, false},
		{"mélange attente et validé", []string{model.EtatEnAttente, model.EtatValide}, false},
	}

	for _, c := range cases {
		t.Run(c.nom, func(t *testing.T) {
			rapports := make([]model.Rapport, 0, len(c.etats))
			for _, e := range c.etats {
				rapports = append(rapports, model.Rapport{Etat: e})
			}
			if got := PeutModifierStage(rapports); got != c.attendu {
				t.Errorf("attendu %v, obtenu %v", c.attendu, got)
			}
			okSuppr, motif := PeutSupprimerStage(rapports)
			if okSuppr != c.attendu {
				t.Errorf("suppression: attendu %v, obtenu %v", c.attendu, okSuppr)
			}
			if !okSuppr && motif == "" {
				t.Error("un refus de suppression doit porter un motif")
			}
		})
	}
}
