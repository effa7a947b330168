package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository point d'entrée de la couche d'accès aux données
type Repository struct {
	db *gorm.DB

	User      UserRepository
	Stagiaire StagiaireRepository
	Encadrant EncadrantRepository
	Stage     StageRepository
	Rapport   RapportRepository
}

// NewRepository assemble les repositories sur une même connexion
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:        db,
		User:      NewUserRepo(db),
		Stagiaire: NewStagiaireRepo(db),
		Encadrant: NewEncadrantRepo(db),
		Stage:     NewStageRepo(db),
		Rapport:   NewRapportRepo(db),
	}
}

// BeginTx ouvre une transaction. Sans connexion sous-jacente (repositories
// assemblés à la main), retourne un tx nil que WithTx sait recevoir.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx retourne un Repository dont tous les accès passent par la
// transaction donnée.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
