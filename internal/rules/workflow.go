package rules

import (
	"fmt"

	"github.com/TisTos-tass3/StagINS/internal/model"
)

// Actions du workflow des rapports
const (
	ActionValider  = "valider"
	ActionArchiver = "archiver"
)

// ValiderWorkflowRapport contrôle une transition du workflow des rapports.
// Seules les transitions En attente → Validé et Validé → Archivé sont admises,
// une étape à la fois.
func ValiderWorkflowRapport(etat, action string) (bool, string) {
	switch action {
	case ActionValider:
		if etat != model.EtatEnAttente {
			return false, "Seul un rapport en attente peut être validé."
		}
	case ActionArchiver:
		if etat != model.EtatValide {
			return false, "Seul un rapport validé peut être archivé."
		}
	default:
		return false, fmt.Sprintf("Action de workflow inconnue: %q.", action)
	}
	return true, ""
}

// PeutModifierRapport un rapport n'est modifiable qu'en attente
func PeutModifierRapport(etat string) bool {
	return etat == model.EtatEnAttente
}

// PeutSupprimerRapport un rapport n'est supprimable qu'en attente
func PeutSupprimerRapport(etat string) (bool, string) {
	if etat != model.EtatEnAttente {
		return false, "Seul un rapport en attente peut être supprimé."
	}
	return true, ""
}

// RapportBloquant indique si l'état d'un rapport verrouille son stage
// (modification et suppression interdites).
func RapportBloquant(etat string) bool {
	return etat == model.EtatValide || etat == model.EtatArchive
}

// PeutModifierStage un stage est modifiable tant qu'aucun de ses rapports
// n'est validé ou archivé.
func PeutModifierStage(rapports []model.Rapport) bool {
	for _, r := range rapports {
		if RapportBloquant(r.Etat) {
			return false
		}
	}
	return true
}

// PeutSupprimerStage mêmes conditions que la modification
func PeutSupprimerStage(rapports []model.Rapport) (bool, string) {
	if !PeutModifierStage(rapports) {
		return false, "Impossible de supprimer un stage avec un rapport validé ou archivé."
	}
	return true, ""
}
