// Package rules regroupe les règles métier pures du système de gestion des
// stages : calcul de statut, workflow des rapports, chevauchement de périodes,
// contraintes de fichiers et codec des matricules. Aucune fonction de ce
// paquet ne touche au stockage ni au transport ; la date du jour est toujours
// passée en paramètre.
package rules

import (
	"time"

	"github.com/TisTos-tass3/StagINS/internal/model"
)

// CalculerStatutStage calcule le statut d'un stage à la date donnée.
//
// Un rapport validé force le statut Validé, définitivement. Sinon le stage est
// En cours tant que la date du jour n'a pas dépassé la date de fin, y compris
// lorsqu'il n'a pas encore commencé (comportement volontaire, pas d'état
// « non démarré » distinct), et Terminé au-delà.
func CalculerStatutStage(today, dateDebut, dateFin time.Time, rapportValide bool) string {
	if rapportValide {
		return model.StatutValide
	}
	if !jour(today).After(jour(dateFin)) {
		return model.StatutEnCours
	}
	return model.StatutTermine
}

// Chevauchent teste le recouvrement de deux périodes semi-ouvertes [debut, fin).
// Deux stages enchaînés (fin de l'un = début de l'autre) ne se chevauchent pas.
func Chevauchent(debutA, finA, debutB, finB time.Time) bool {
	return jour(debutA).Before(jour(finB)) && jour(finA).After(jour(debutB))
}

// jour tronque un instant à la date civile, pour comparer des dates sans
// dépendre de l'heure ni du fuseau de l'instant reçu.
func jour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
