package model

// Niveaux d'étude admis pour un stagiaire
var NiveauxEtudeAutorises = []string{"Bac +2", "Bac +3", "Bac +5", "Bac +8"}

// Stagiaire personne effectuant un stage : table stagiaires
type Stagiaire struct {
	StagiaireID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"stagiaire_id"`
	Nom         string `gorm:"type:varchar(100);not null"                     json:"nom"`
	Prenom      string `gorm:"type:varchar(100);not null"                     json:"prenom"`
	Ecole       string `gorm:"type:varchar(150)"                              json:"ecole,omitempty"`
	Specialite  string `gorm:"type:varchar(150)"                              json:"specialite,omitempty"`
	NiveauEtude string `gorm:"type:varchar(50)"                               json:"niveau_etude,omitempty"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Telephone   string `gorm:"type:varchar(20)"                               json:"telephone,omitempty"`
	// Matricule est attribué à la création et ne change jamais ensuite.
	Matricule string `gorm:"type:varchar(50);not null;uniqueIndex" json:"matricule"`
	BaseModel

	Stages []Stage `gorm:"foreignKey:StagiaireID;references:StagiaireID" json:"stages,omitempty"`
}

// TableName nom de la table
func (Stagiaire) TableName() string { return "stagiaires" }
