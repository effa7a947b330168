package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TisTos-tass3/StagINS/internal/dto"
)

type statutSvcStub struct {
	appels int64
}

func (s *statutSvcStub) RecalculerTous(ctx context.Context) (*dto.RecalculStatutsResponse, error) {
	atomic.AddInt64(&s.appels, 1)
	return &dto.RecalculStatutsResponse{StagesExamines: 3, StagesModifies: 1}, nil
}

func TestScheduler_ExecuteImmediatementPuisPeriodiquement(t *testing.T) {
	stub := &statutSvcStub{}
	s := New(stub, 20*time.Millisecond, zap.NewNop())

	s.Start()
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	n := atomic.LoadInt64(&stub.appels)
	if n < 2 {
		t.Fatalf("attendu au moins 2 recalculs (initial + périodique), obtenu %d", n)
	}
}

func TestScheduler_StopAttendLaFinDuTour(t *testing.T) {
	stub := &statutSvcStub{}
	s := New(stub, time.Hour, zap.NewNop())

	s.Start()
	time.Sleep(10 * time.Millisecond)

	fini := make(chan struct{})
	go func() {
		s.Stop()
		close(fini)
	}()

	select {
	case <-fini:
	case <-time.After(time.Second):
		t.Fatal("Stop ne s'est pas terminé")
	}

	avant := atomic.LoadInt64(&stub.appels)
	time.Sleep(30 * time.Millisecond)
	if apres := atomic.LoadInt64(&stub.appels); apres != avant {
		t.Fatalf("recalcul exécuté après Stop: %d -> %d", avant, apres)
	}
}
