package model

import "time"

// États du workflow d'un rapport, strictement progressif :
// En attente → Validé → Archivé.
const (
	EtatEnAttente = "En attente"
	EtatValide    = "Validé"
	EtatArchive   = "Archivé"
)

// Rapport livrable rattaché à un stage : table rapports.
// La contrainte unique sur stage_id garantit un seul rapport par stage.
type Rapport struct {
	RapportID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rapport_id"`
	StageID   string `gorm:"type:uuid;not null;uniqueIndex"                 json:"stage_id"`
	Etat      string `gorm:"type:varchar(20);not null;default:'En attente'" json:"etat"`
	// DateDepot est posée une seule fois, à la création.
	DateDepot     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"date_depot"`
	DerniereModif time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"derniere_modif"`
	Fichier       string    `gorm:"type:varchar(255);not null"         json:"fichier"`
	BaseModel

	Stage *Stage `gorm:"foreignKey:StageID;references:StageID" json:"stage,omitempty"`
}

// TableName nom de la table
func (Rapport) TableName() string { return "rapports" }
