package service

import (
	apperrors "github.com/TisTos-tass3/StagINS/pkg/errors"
)

// Messages associés aux contraintes nommées de la base. Les
// pré-vérifications des services sont consultatives ; quand deux requêtes
// concurrentes passent le contrôle, la contrainte tranche et sa violation
// est traduite ici vers la même erreur de champ. La contrainte d'exclusion
// de période est rapportée sur les deux bornes, comme la pré-vérification.
var messagesContraintes = map[string]struct {
	champs  []string
	message string
}{
	"stagiaires_email_key":     {[]string{"email"}, "Un stagiaire avec cet email existe déjà."},
	"stagiaires_matricule_key": {[]string{"matricule"}, "Ce matricule est déjà attribué."},
	"encadrants_email_key":     {[]string{"email"}, "Un encadrant avec cet email existe déjà."},
	"encadrants_telephone_key": {[]string{"telephone"}, "Un encadrant avec ce numéro de téléphone existe déjà."},
	"stages_periode_excl":      {[]string{"date_debut", "date_fin"}, "Ce stagiaire a déjà un stage sur cette période."},
	"rapports_stage_id_key":    {[]string{"stage_id"}, "Un rapport existe déjà pour ce stage."},
}

// traduireContrainte convertit une violation de contrainte en erreur de champ.
// Retourne l'erreur d'origine si elle ne correspond à aucune contrainte connue.
func traduireContrainte(err error) error {
	if err == nil {
		return nil
	}
	contrainte, ok := apperrors.ConstraintViolation(err)
	if !ok {
		return err
	}
	m, connu := messagesContraintes[contrainte]
	if !connu {
		return err
	}
	errs := apperrors.NewFieldErrors()
	for _, champ := range m.champs {
		errs.Add(champ, m.message)
	}
	return errs
}
