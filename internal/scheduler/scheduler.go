package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/service"
)

// Scheduler déclenche périodiquement le recalcul des statuts de stages.
// Le recalcul reste idempotent : un tour sans changement n'écrit rien.
type Scheduler struct {
	statutSvc service.StatutService
	interval  time.Duration
	logger    *zap.Logger
	stop      chan struct{}
	done      chan struct{}
}

// New crée un Scheduler arrêté
func New(statutSvc service.StatutService, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		statutSvc: statutSvc,
		interval:  interval,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start lance la boucle périodique. Un premier recalcul est exécuté
// immédiatement pour rattraper un éventuel arrêt prolongé du serveur.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop arrête la boucle et attend la fin du tour en cours
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	s.logger.Info("planificateur de statuts démarré", zap.Duration("interval", s.interval))

	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stop:
			s.logger.Info("planificateur de statuts arrêté")
			return
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.statutSvc.RecalculerTous(ctx)
	if err != nil {
		s.logger.Error("échec du recalcul planifié des statuts", zap.Error(err))
		return
	}

	s.logger.Info("recalcul planifié des statuts terminé",
		zap.Int64("stages_examines", result.StagesExamines),
		zap.Int64("stages_modifies", result.StagesModifies),
	)
}
