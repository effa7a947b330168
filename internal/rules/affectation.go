package rules

import (
	"github.com/TisTos-tass3/StagINS/internal/model"
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
)

// Affectation placement organisationnel d'un stage
type Affectation struct {
	Direction string
	Division  string
	Unite     string
	Service   string
}

// NormaliserAffectation applique la règle de placement : pour la direction
// BCR l'unité est obligatoire et la division est effacée ; pour toute autre
// direction, l'unité et le service sont effacés. Retourne l'affectation
// nettoyée et les éventuelles erreurs de champ.
func NormaliserAffectation(a Affectation) (Affectation, apperrors.FieldErrors) {
	errs := apperrors.NewFieldErrors()

	if a.Direction == model.DirectionBCR {
		if a.Unite == "" {
			errs.Add("unite", "L'unité d'affectation est obligatoire pour la direction BCR.")
		}
		a.Division = ""
	} else {
		a.Unite = ""
		a.Service = ""
	}

	return a, errs
}
