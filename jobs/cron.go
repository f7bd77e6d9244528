// Package jobs holds the background side of the dashboard: a cron sweep
// over subscription expiry and a river worker that refreshes cached
// project summaries.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/facture-ma/dashkit/clock"
	"github.com/facture-ma/dashkit/entitlement"
)

// SubscriptionLister exposes every subscription for sweep-style jobs.
type SubscriptionLister interface {
	Subscriptions(ctx context.Context) (map[uuid.UUID]entitlement.SubscriptionSnapshot, error)
}

// SummaryInvalidator drops a company's cached dashboard summary.
type SummaryInvalidator interface {
	Del(ctx context.Context, companyID uuid.UUID) error
}

// ExpirySweeper walks all subscriptions once a day, logs companies inside
// the warning window or past expiry, and invalidates cached summaries for
// companies whose entitlement lapsed since the last sweep.
type ExpirySweeper struct {
	Subs  SubscriptionLister
	Cache SummaryInvalidator
	Clock clock.Clock
	Log   logrus.FieldLogger
	Spec  string

	runner *cron.Cron
}

func (s *ExpirySweeper) defaulted() {
	if s.Clock == nil {
		s.Clock = clock.System{}
	}
	if s.Log == nil {
		s.Log = logrus.StandardLogger()
	}
	if s.Spec == "" {
		s.Spec = "@daily"
	}
}

// Start schedules the sweep and begins running it. Call Stop to shut down.
func (s *ExpirySweeper) Start() error {
	s.defaulted()
	s.runner = cron.New()
	if _, err := s.runner.AddFunc(s.Spec, func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.Log.WithError(err).Error("expiry sweep failed")
		}
	}); err != nil {
		return err
	}
	s.runner.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (s *ExpirySweeper) Stop() {
	if s.runner == nil {
		return
	}
	ctx := s.runner.Stop()
	<-ctx.Done()
}

// Sweep runs one pass. It is exported so operators can trigger it by hand.
func (s *ExpirySweeper) Sweep(ctx context.Context) error {
	s.defaulted()
	subs, err := s.Subs.Subscriptions(ctx)
	if err != nil {
		return err
	}
	started := time.Now()
	now := s.Clock.Now()
	var warned, lapsed int
	for companyID, sub := range subs {
		st := entitlement.Evaluate(sub, clock.NewFixed(now))
		switch {
		case st.Warning:
			warned++
			s.Log.WithFields(logrus.Fields{
				"company_id": companyID,
				"days_left":  *st.DaysRemaining,
			}).Warn("subscription expiring soon")
		case st.Expired:
			lapsed++
			s.Log.WithField("company_id", companyID).Info("subscription expired")
			if s.Cache != nil {
				if err := s.Cache.Del(ctx, companyID); err != nil {
					s.Log.WithError(err).WithField("company_id", companyID).
						Warn("failed to drop cached summary")
				}
			}
		}
	}
	s.Log.WithFields(logrus.Fields{
		"companies": len(subs),
		"warned":    warned,
		"lapsed":    lapsed,
		"took":      time.Since(started).String(),
	}).Debug("expiry sweep complete")
	return nil
}
