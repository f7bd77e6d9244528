package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/sirupsen/logrus"

	"github.com/facture-ma/dashkit/clock"
	"github.com/facture-ma/dashkit/core"
	"github.com/facture-ma/dashkit/projects"
)

// SummaryWriter stores a freshly computed dashboard summary.
type SummaryWriter interface {
	Put(ctx context.Context, companyID uuid.UUID, s projects.Summary) error
}

// SummaryRefreshArgs asks for one company's project summary to be rebuilt.
// Enqueue it after bulk imports or when a webhook reports project changes.
type SummaryRefreshArgs struct {
	CompanyID uuid.UUID `json:"company_id"`
}

func (SummaryRefreshArgs) Kind() string { return "project_summary_refresh" }

// SummaryRefreshWorker recomputes a company's project summary and writes it
// to the cache so the next dashboard read is served warm.
type SummaryRefreshWorker struct {
	river.WorkerDefaults[SummaryRefreshArgs]

	Projects core.ProjectStore
	Cache    SummaryWriter
	Clock    clock.Clock
	Log      logrus.FieldLogger
}

func (w *SummaryRefreshWorker) Work(ctx context.Context, job *river.Job[SummaryRefreshArgs]) error {
	return w.refresh(ctx, job.Args.CompanyID)
}

func (w *SummaryRefreshWorker) refresh(ctx context.Context, companyID uuid.UUID) error {
	clk := w.Clock
	if clk == nil {
		clk = clock.System{}
	}
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	records, err := w.Projects.ProjectsByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	sum := projects.Classify(records, clk)
	if err := w.Cache.Put(ctx, companyID, sum); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"company_id": companyID,
		"records":    sum.Counts.Total,
	}).Debug("refreshed project summary")
	return nil
}

// NewRefreshClient wires the refresh worker into a river client backed by
// the given pgx pool. The caller starts and stops the client.
func NewRefreshClient(pool *pgxpool.Pool, w *SummaryRefreshWorker) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers, w); err != nil {
		return nil, err
	}
	return river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
	})
}
