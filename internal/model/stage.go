package model

import "time"

// Statuts du cycle de vie d'un stage
const (
	StatutEnCours = "En cours"
	StatutTermine = "Terminé"
	StatutValide  = "Validé"
)

// Types de stage
const (
	TypeAcademique    = "Academique"
	TypeProfessionnel = "Professionnel"
)

// DirectionBCR direction pour laquelle l'affectation se fait par unité/service
// et non par division.
const DirectionBCR = "BCR"

// Stage affectation d'un stagiaire, bornée dans le temps : table stages
type Stage struct {
	StageID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"stage_id"`
	Theme     string    `gorm:"type:varchar(255);not null"                     json:"theme"`
	TypeStage string    `gorm:"type:varchar(20);not null"                      json:"type_stage"` // Academique | Professionnel
	DateDebut time.Time `gorm:"type:date;not null"                             json:"date_debut"`
	DateFin   time.Time `gorm:"type:date;not null"                             json:"date_fin"`
	// Statut est recalculé à chaque sauvegarde sauf s'il vaut déjà Validé ;
	// Validé n'est posé que par la validation d'un rapport.
	Statut            string `gorm:"type:varchar(20);not null;default:'En cours'" json:"statut"`
	Direction         string `gorm:"type:varchar(100)" json:"direction,omitempty"`
	Division          string `gorm:"type:varchar(100)" json:"division,omitempty"`
	Unite             string `gorm:"type:varchar(100)" json:"unite,omitempty"`
	Service           string `gorm:"type:varchar(100)" json:"service,omitempty"`
	Decision          string `gorm:"type:varchar(100)" json:"decision,omitempty"`
	LettreAcceptation string `gorm:"type:varchar(255)" json:"lettre_acceptation,omitempty"`

	StagiaireID string  `gorm:"type:uuid;not null" json:"stagiaire_id"`
	EncadrantID *string `gorm:"type:uuid"          json:"encadrant_id,omitempty"`
	BaseModel

	Stagiaire *Stagiaire `gorm:"foreignKey:StagiaireID;references:StagiaireID" json:"stagiaire,omitempty"`
	Encadrant *Encadrant `gorm:"foreignKey:EncadrantID;references:EncadrantID" json:"encadrant,omitempty"`
	Rapports  []Rapport  `gorm:"foreignKey:StageID;references:StageID"         json:"rapports,omitempty"`
}

// TableName nom de la table
func (Stage) TableName() string { return "stages" }
