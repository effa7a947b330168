package model

// Affiliations possibles d'un encadrant
const (
	InstitutionInterne = "Interne"
	InstitutionExterne = "Externe"
)

// Encadrant personne encadrant un ou plusieurs stages : table encadrants
type Encadrant struct {
	EncadrantID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"encadrant_id"`
	Nom         string `gorm:"type:varchar(100);not null"                     json:"nom"`
	Prenom      string `gorm:"type:varchar(100);not null"                     json:"prenom"`
	Institution string `gorm:"type:varchar(20);not null"                      json:"institution"` // Interne | Externe
	// NomInstitution n'est renseigné que pour une affiliation externe.
	NomInstitution string `gorm:"type:varchar(150)"                      json:"nom_institution,omitempty"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Telephone      string `gorm:"type:varchar(20)"                       json:"telephone,omitempty"`
	BaseModel
}

// TableName nom de la table
func (Encadrant) TableName() string { return "encadrants" }
