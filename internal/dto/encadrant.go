package dto

// ── Encadrants ──

// CreateEncadrantRequest création d'un encadrant
type CreateEncadrantRequest struct {
	Nom         string `json:"nom"         binding:"required,min=2,max=100"`
	Prenom      string `json:"prenom"      binding:"required,min=2,max=100"`
	Institution string `json:"institution" binding:"required,oneof=Interne Externe"`
	// NomInstitution est exigé par le service quand l'affiliation est externe.
	NomInstitution string `json:"nom_institution" binding:"omitempty,max=150"`
	Email          string `json:"email"           binding:"required,email"`
	Telephone      string `json:"telephone"       binding:"omitempty,max=20"`
}

// UpdateEncadrantRequest mise à jour partielle d'un encadrant
type UpdateEncadrantRequest struct {
	Nom            *string `json:"nom"             binding:"omitempty,min=2,max=100"`
	Prenom         *string `json:"prenom"          binding:"omitempty,min=2,max=100"`
	Institution    *string `json:"institution"     binding:"omitempty,oneof=Interne Externe"`
	NomInstitution *string `json:"nom_institution" binding:"omitempty,max=150"`
	Email          *string `json:"email"           binding:"omitempty,email"`
	Telephone      *string `json:"telephone"       binding:"omitempty,max=20"`
}

// ListEncadrantsRequest filtres de la liste des encadrants
type ListEncadrantsRequest struct {
	PaginationRequest
	Recherche   string `form:"recherche"`
	Institution string `form:"institution" binding:"omitempty,oneof=Interne Externe"`
}

// EncadrantResponse fiche encadrant
type EncadrantResponse struct {
	ID             string `json:"id"`
	Nom            string `json:"nom"`
	Prenom         string `json:"prenom"`
	Institution    string `json:"institution"`
	NomInstitution string `json:"nom_institution,omitempty"`
	Email          string `json:"email"`
	Telephone      string `json:"telephone,omitempty"`
	NbStages       int64  `json:"nb_stages"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
