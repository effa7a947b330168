package model

// Rôles applicatifs
const (
	RoleAdmin        = "admin"
	RoleGestionnaire = "gestionnaire"
	RoleConsultant   = "consultant"
)

// User compte utilisateur de l'application : table users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'consultant'" json:"role"`
	BaseModel
}

// TableName nom de la table
func (User) TableName() string { return "users" }

// CanEditStages droits d'édition des stages et entités liées
func (u *User) CanEditStages() bool {
	return u.Role == RoleAdmin || u.Role == RoleGestionnaire
}

// CanValidateRapports droits de validation/archivage des rapports
func (u *User) CanValidateRapports() bool {
	return u.Role == RoleAdmin || u.Role == RoleGestionnaire
}

// CanDelete droits de suppression
func (u *User) CanDelete() bool { return u.Role == RoleAdmin }
