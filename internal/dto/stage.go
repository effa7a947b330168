package dto

// ── Stages ──

// CreateStageRequest création d'un stage ; le statut est calculé par le
// serveur à partir des dates, jamais fourni par le client.
type CreateStageRequest struct {
	Theme       string `json:"theme"        binding:"required,min=3,max=255"`
	TypeStage   string `json:"type_stage"   binding:"required,oneof=Academique Professionnel"`
	DateDebut   string `json:"date_debut"   binding:"required"` // "2024-01-01"
	DateFin     string `json:"date_fin"     binding:"required"` // "2024-03-01"
	Direction   string `json:"direction"    binding:"omitempty,max=100"`
	Division    string `json:"division"     binding:"omitempty,max=100"`
	Unite       string `json:"unite"        binding:"omitempty,max=100"`
	Service     string `json:"service"      binding:"omitempty,max=100"`
	Decision    string `json:"decision"     binding:"omitempty,max=100"`
	StagiaireID string `json:"stagiaire_id" binding:"required,uuid"`
	EncadrantID string `json:"encadrant_id" binding:"omitempty,uuid"`
}

// UpdateStageRequest mise à jour partielle d'un stage
type UpdateStageRequest struct {
	Theme       *string `json:"theme"        binding:"omitempty,min=3,max=255"`
	TypeStage   *string `json:"type_stage"   binding:"omitempty,oneof=Academique Professionnel"`
	DateDebut   *string `json:"date_debut"`
	DateFin     *string `json:"date_fin"`
	Direction   *string `json:"direction"    binding:"omitempty,max=100"`
	Division    *string `json:"division"     binding:"omitempty,max=100"`
	Unite       *string `json:"unite"        binding:"omitempty,max=100"`
	Service     *string `json:"service"      binding:"omitempty,max=100"`
	Decision    *string `json:"decision"     binding:"omitempty,max=100"`
	EncadrantID *string `json:"encadrant_id" binding:"omitempty,uuid"`
}

// ListStagesRequest filtres de la liste des stages
type ListStagesRequest struct {
	PaginationRequest
	Recherche   string `form:"recherche"` // thème ou nom du stagiaire
	Statut      string `form:"statut"       binding:"omitempty,oneof='En cours' 'Terminé' 'Validé'"`
	TypeStage   string `form:"type_stage"   binding:"omitempty,oneof=Academique Professionnel"`
	Direction   string `form:"direction"`
	StagiaireID string `form:"stagiaire_id" binding:"omitempty,uuid"`
	EncadrantID string `form:"encadrant_id" binding:"omitempty,uuid"`
}

// StageResponse fiche stage
type StageResponse struct {
	ID                string             `json:"id"`
	Theme             string             `json:"theme"`
	TypeStage         string             `json:"type_stage"`
	DateDebut         string             `json:"date_debut"`
	DateFin           string             `json:"date_fin"`
	Statut            string             `json:"statut"`
	Direction         string             `json:"direction,omitempty"`
	Division          string             `json:"division,omitempty"`
	Unite             string             `json:"unite,omitempty"`
	Service           string             `json:"service,omitempty"`
	Decision          string             `json:"decision,omitempty"`
	LettreAcceptation string             `json:"lettre_acceptation,omitempty"`
	Stagiaire         *StagiaireResponse `json:"stagiaire,omitempty"`
	Encadrant         *EncadrantResponse `json:"encadrant,omitempty"`
	Rapport           *RapportResponse   `json:"rapport,omitempty"`
	CreatedAt         string             `json:"created_at"`
	UpdatedAt         string             `json:"updated_at"`
}

// RecalculStatutsResponse bilan d'un recalcul global des statuts
type RecalculStatutsResponse struct {
	StagesExamines int64 `json:"stages_examines"`
	StagesModifies int64 `json:"stages_modifies"`
	DureeMillis    int64 `json:"duree_millis"`
}

// AttestationResponse données d'une attestation de fin de stage
type AttestationResponse struct {
	Matricule      string `json:"matricule"`
	NomComplet     string `json:"nom_complet"`
	Ecole          string `json:"ecole,omitempty"`
	Theme          string `json:"theme"`
	Direction      string `json:"direction"`
	DirectionTexte string `json:"direction_texte"` // avec l'article, pour le corps du document
	Duree          string `json:"duree"`
	DateDebut      string `json:"date_debut"` // en toutes lettres
	DateFin        string `json:"date_fin"`
	DateEmission   string `json:"date_emission"`
	Encadrant      string `json:"encadrant,omitempty"`
}
