package dto

// ── Tableau de bord et alertes ──

// Niveaux d'alerte
const (
	AlerteWarning = "warning"
	AlerteError   = "error"
)

// AlerteResponse signalement sur un stage demandant une action
type AlerteResponse struct {
	Niveau      string `json:"niveau"` // warning | error
	StageID     string `json:"stage_id"`
	Theme       string `json:"theme"`
	Stagiaire   string `json:"stagiaire"`
	Matricule   string `json:"matricule"`
	DateFin     string `json:"date_fin"`
	JoursRetard int    `json:"jours_retard,omitempty"` // pour les alertes error
	Message     string `json:"message"`
}

// AlertesResponse alertes regroupées par niveau
type AlertesResponse struct {
	Warnings []AlerteResponse `json:"warnings"`
	Errors   []AlerteResponse `json:"errors"`
}

// RepartitionMensuelle nombre de stages démarrés par mois
type RepartitionMensuelle struct {
	Mois    string `json:"mois"` // "2024-01"
	NbStage int64  `json:"nb_stages"`
}

// DashboardResponse synthèse du tableau de bord
type DashboardResponse struct {
	NbStagiaires         int64                  `json:"nb_stagiaires"`
	NbEncadrants         int64                  `json:"nb_encadrants"`
	NbStages             int64                  `json:"nb_stages"`
	StagesParStatut      map[string]int64       `json:"stages_par_statut"`
	RapportsParEtat      map[string]int64       `json:"rapports_par_etat"`
	RepartitionMensuelle []RepartitionMensuelle `json:"repartition_mensuelle"`
	NbAlertes            int                    `json:"nb_alertes"`
}
