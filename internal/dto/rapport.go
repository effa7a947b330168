package dto

// ── Rapports ──

// CreateRapportRequest dépôt d'un rapport ; le fichier arrive en
// multipart/form-data, d'où les tags form.
type CreateRapportRequest struct {
	StageID string `form:"stage_id" binding:"required,uuid"`
}

// WorkflowRapportRequest action de workflow sur un rapport
type WorkflowRapportRequest struct {
	Action string `json:"action" binding:"required,oneof=valider archiver"`
}

// ListRapportsRequest filtres de la liste des rapports
type ListRapportsRequest struct {
	PaginationRequest
	Etat    string `form:"etat"     binding:"omitempty,oneof='En attente' 'Validé' 'Archivé'"`
	StageID string `form:"stage_id" binding:"omitempty,uuid"`
	Annee   int    `form:"annee"    binding:"omitempty,min=2000,max=2100"` // année de dépôt
}

// RapportResponse fiche rapport
type RapportResponse struct {
	ID            string         `json:"id"`
	StageID       string         `json:"stage_id"`
	Etat          string         `json:"etat"`
	Fichier       string         `json:"fichier"`
	DateDepot     string         `json:"date_depot"`
	DerniereModif string         `json:"derniere_modif"`
	Stage         *StageResponse `json:"stage,omitempty"`
}
