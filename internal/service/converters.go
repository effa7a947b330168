package service

import (
	"github.com/TisTos-tass3/StagINS/internal/dto"
	"github.com/TisTos-tass3/StagINS/internal/model"
)

// Conversions modèle → DTO partagées entre services.

const horodatage = "2006-01-02T15:04:05Z"
const formatDate = "2006-01-02"

func toStagiaireResponse(st *model.Stagiaire) *dto.StagiaireResponse {
	return &dto.StagiaireResponse{
		ID:          st.StagiaireID,
		Matricule:   st.Matricule,
		Nom:         st.Nom,
		Prenom:      st.Prenom,
		Ecole:       st.Ecole,
		Specialite:  st.Specialite,
		NiveauEtude: st.NiveauEtude,
		Email:       st.Email,
		Telephone:   st.Telephone,
		CreatedAt:   st.CreatedAt.Format(horodatage),
		UpdatedAt:   st.UpdatedAt.Format(horodatage),
	}
}

func toEncadrantResponse(e *model.Encadrant) *dto.EncadrantResponse {
	return &dto.EncadrantResponse{
		ID:             e.EncadrantID,
		Nom:            e.Nom,
		Prenom:         e.Prenom,
		Institution:    e.Institution,
		NomInstitution: e.NomInstitution,
		Email:          e.Email,
		Telephone:      e.Telephone,
		CreatedAt:      e.CreatedAt.Format(horodatage),
		UpdatedAt:      e.UpdatedAt.Format(horodatage),
	}
}

func toStageResponse(st *model.Stage) *dto.StageResponse {
	resp := &dto.StageResponse{
		ID:                st.StageID,
		Theme:             st.Theme,
		TypeStage:         st.TypeStage,
		DateDebut:         st.DateDebut.Format(formatDate),
		DateFin:           st.DateFin.Format(formatDate),
		Statut:            st.Statut,
		Direction:         st.Direction,
		Division:          st.Division,
		Unite:             st.Unite,
		Service:           st.Service,
		Decision:          st.Decision,
		LettreAcceptation: st.LettreAcceptation,
	}
	resp.CreatedAt = st.CreatedAt.Format(horodatage)
	resp.UpdatedAt = st.UpdatedAt.Format(horodatage)

	if st.Stagiaire != nil {
		resp.Stagiaire = toStagiaireResponse(st.Stagiaire)
	}
	if st.Encadrant != nil {
		resp.Encadrant = toEncadrantResponse(st.Encadrant)
	}
	if len(st.Rapports) > 0 {
		resp.Rapport = toRapportResponse(&st.Rapports[0])
	}
	return resp
}

func toRapportResponse(r *model.Rapport) *dto.RapportResponse {
	return &dto.RapportResponse{
		ID:            r.RapportID,
		StageID:       r.StageID,
		Etat:          r.Etat,
		Fichier:       r.Fichier,
		DateDepot:     r.DateDepot.Format(horodatage),
		DerniereModif: r.DerniereModif.Format(horodatage),
	}
}
