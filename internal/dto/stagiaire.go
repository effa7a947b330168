package dto

// ── Stagiaires ──

// CreateStagiaireRequest création d'un stagiaire ; le matricule est attribué
// par le serveur, jamais fourni par le client.
type CreateStagiaireRequest struct {
	Nom         string `json:"nom"          binding:"required,min=2,max=100"`
	Prenom      string `json:"prenom"       binding:"required,min=2,max=100"`
	Ecole       string `json:"ecole"        binding:"omitempty,max=150"`
	Specialite  string `json:"specialite"   binding:"omitempty,max=150"`
	NiveauEtude string `json:"niveau_etude" binding:"omitempty,max=50"`
	Email       string `json:"email"        binding:"required,email"`
	Telephone   string `json:"telephone"    binding:"omitempty,max=20"`
}

// UpdateStagiaireRequest mise à jour partielle d'un stagiaire.
// Matricule est accepté uniquement s'il est identique à la valeur en base :
// en fournir un autre est une erreur de champ, jamais une modification.
type UpdateStagiaireRequest struct {
	Matricule   *string `json:"matricule"    binding:"omitempty,max=20"`
	Nom         *string `json:"nom"          binding:"omitempty,min=2,max=100"`
	Prenom      *string `json:"prenom"       binding:"omitempty,min=2,max=100"`
	Ecole       *string `json:"ecole"        binding:"omitempty,max=150"`
	Specialite  *string `json:"specialite"   binding:"omitempty,max=150"`
	NiveauEtude *string `json:"niveau_etude" binding:"omitempty,max=50"`
	Email       *string `json:"email"        binding:"omitempty,email"`
	Telephone   *string `json:"telephone"    binding:"omitempty,max=20"`
}

// ListStagiairesRequest filtres de la liste des stagiaires
type ListStagiairesRequest struct {
	PaginationRequest
	Recherche   string `form:"recherche"`    // nom, prénom, matricule ou école
	NiveauEtude string `form:"niveau_etude"`
}

// StagiaireResponse fiche stagiaire
type StagiaireResponse struct {
	ID          string `json:"id"`
	Matricule   string `json:"matricule"`
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom"`
	Ecole       string `json:"ecole,omitempty"`
	Specialite  string `json:"specialite,omitempty"`
	NiveauEtude string `json:"niveau_etude,omitempty"`
	Email       string `json:"email"`
	Telephone   string `json:"telephone,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// StagiaireDetailResponse fiche stagiaire avec ses stages
type StagiaireDetailResponse struct {
	StagiaireResponse
	Stages []StageResponse `json:"stages"`
}
