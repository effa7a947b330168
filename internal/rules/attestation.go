package rules

import (
	"fmt"
	"time"

	"github.com/TisTos-tass3/StagINS/internal/model"
)

// Noms complets des directions, pour les documents officiels
var nomsDirections = map[string]string{
	"DGE": "Direction Générale des Études",
	"DF":  "Direction des Finances",
	"DRH": "Direction des Ressources Humaines",
	"DSI": "Direction des Systèmes d'Information",
	"BCR": "Bureau Central du Recensement",
}

var moisFrancais = []string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// NomCompletDirection retourne le nom complet d'une direction ; pour BCR
// l'unité d'affectation est accolée entre parenthèses.
func NomCompletDirection(code, unite string) string {
	nom, ok := nomsDirections[code]
	if !ok {
		if code == "" {
			return "Non spécifiée"
		}
		nom = code
	}
	if code == model.DirectionBCR && unite != "" {
		return fmt.Sprintf("%s (%s)", nom, unite)
	}
	return nom
}

// DirectionAvecArticle préfixe le nom de la direction de l'article qui
// convient : « du » pour le BCR, « de la » pour les directions.
func DirectionAvecArticle(code, unite string) string {
	nom := NomCompletDirection(code, unite)
	if code == model.DirectionBCR {
		return "du " + nom
	}
	return "de la " + nom
}

// DureeEnMois durée d'un stage en mois entiers ; tout reliquat de jours
// compte pour un mois supplémentaire.
func DureeEnMois(debut, fin time.Time) string {
	if debut.IsZero() || fin.IsZero() {
		return "Non spécifiée"
	}

	mois := (fin.Year()-debut.Year())*12 + int(fin.Month()) - int(debut.Month())
	if fin.Day() < debut.Day() {
		mois--
	}
	if mois < 0 {
		mois = 0
	}
	if fin.Day() != debut.Day() || mois == 0 {
		mois++
	}

	return fmt.Sprintf("%d mois", mois)
}

// DateEnLettres formate une date en toutes lettres (« 3 mars 2024 »)
func DateEnLettres(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), moisFrancais[t.Month()-1], t.Year())
}
