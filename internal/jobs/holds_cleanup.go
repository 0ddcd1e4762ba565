package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/barbersched/BarberSched-BookingService/internal/tenant"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
)

// HoldRepository интерфейс репозитория holds
type HoldRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HoldsCleanup фоновая джоба очистки протухших holds. Протухший hold
// и так игнорируется на чтении, джоба лишь не дает таблице расти.
type HoldsCleanup struct {
	cron     *cron.Cron
	holdRepo HoldRepository
	registry *tenant.Registry
	logger   Logger
}

// NewHoldsCleanup создает джобу с указанным cron-расписанием
func NewHoldsCleanup(schedule string, holdRepo HoldRepository, registry *tenant.Registry, logger Logger) (*HoldsCleanup, error) {
	j := &HoldsCleanup{
		cron:     cron.New(),
		holdRepo: holdRepo,
		registry: registry,
		logger:   logger,
	}

	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, err
	}

	return j, nil
}

// Start запускает планировщик
func (j *HoldsCleanup) Start() {
	j.cron.Start()
}

// Stop останавливает планировщик и дожидается завершения текущего прогона
func (j *HoldsCleanup) Stop() {
	<-j.cron.Stop().Done()
}

// run выполняет очистку по всем тенантам
func (j *HoldsCleanup) run() {
	now := time.Now()

	for _, slug := range j.registry.Slugs() {
		db, ok := j.registry.Resolve(slug)
		if !ok {
			continue
		}

		ctx := dbmetrics.WithDB(context.Background(), db)

		deleted, err := j.holdRepo.DeleteExpired(ctx, now)
		if err != nil {
			j.logger.Error("HoldsCleanup: tenant=%s cleanup failed: %v", slug, err)
			continue
		}

		if deleted > 0 {
			j.logger.Info("HoldsCleanup: tenant=%s removed %d expired holds", slug, deleted)
		}
	}
}
