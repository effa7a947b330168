package rules

import (
	"strings"

	"github.com/TisTos-tass3/StagINS/internal/model"
)

// TelephoneValide un téléphone ne contient que des chiffres
func TelephoneValide(telephone string) bool {
	if telephone == "" {
		return true
	}
	for _, r := range telephone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NiveauEtudeValide le niveau d'étude appartient à la liste fermée
func NiveauEtudeValide(niveau string) bool {
	if niveau == "" {
		return true
	}
	for _, n := range model.NiveauxEtudeAutorises {
		if niveau == n {
			return true
		}
	}
	return false
}

// MessageNiveauEtudeInvalide message d'erreur listant les niveaux admis
func MessageNiveauEtudeInvalide() string {
	return "Niveau d'étude non valide. Choisissez parmi: " +
		strings.Join(model.NiveauxEtudeAutorises, ", ")
}
