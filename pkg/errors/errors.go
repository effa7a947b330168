package errors

import (
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// FieldErrors porte les erreurs de validation métier, indexées par champ.
// Chaque champ peut cumuler plusieurs messages ; le client les affiche
// en regard du champ concerné.
type FieldErrors map[string][]string

// NewFieldErrors crée une collection vide.
func NewFieldErrors() FieldErrors {
	return make(FieldErrors)
}

// Add ajoute un message d'erreur pour un champ.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge fusionne une autre collection dans celle-ci.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		fe[field] = append(fe[field], messages...)
	}
}

// HasErrors indique si au moins un champ est en erreur.
func (fe FieldErrors) HasErrors() bool { return len(fe) > 0 }

// Error implémente error. Les champs sont triés pour un message stable.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString(" ; ")
		}
		b.WriteString(field + ": " + strings.Join(fe[field], ", "))
	}
	return b.String()
}

// AsFieldErrors extrait une FieldErrors d'une chaîne d'erreurs.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// StateConflictError signale une opération interdite dans l'état courant de
// l'entité (rapport validé, encadrant référencé...). Contrairement à une
// erreur de validation, elle porte un seul message explicatif.
type StateConflictError struct {
	Reason string
}

func (e *StateConflictError) Error() string { return e.Reason }

// Conflict construit une StateConflictError.
func Conflict(reason string) *StateConflictError {
	return &StateConflictError{Reason: reason}
}

// AsStateConflict extrait une StateConflictError d'une chaîne d'erreurs.
func AsStateConflict(err error) (*StateConflictError, bool) {
	var sc *StateConflictError
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}

// ── Traduction des violations de contraintes PostgreSQL ──
//
// Les pré-vérifications (email unique, un rapport par stage, chevauchement)
// sont consultatives : sous requêtes concurrentes, seule la contrainte en base
// fait foi. Le code 23505 (unique_violation) ou 23P01 (exclusion_violation)
// remonté à l'écriture doit être traduit vers la même erreur que la
// pré-vérification aurait produite.

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// ConstraintViolation indique si err est une violation de contrainte unique ou
// d'exclusion, et retourne le nom de la contrainte concernée.
func ConstraintViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != pgUniqueViolation && pgErr.Code != pgExclusionViolation {
		return "", false
	}
	return pgErr.ConstraintName, true
}
