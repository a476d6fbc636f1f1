// Package jobs runs the periodic maintenance tasks: repairing missing
// developer role grants and publishing the review backlog.
package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
	"github.com/atoolsera/agency-backend/internal/metrics"
)

type RoleReconciler interface {
	ReconcileRoleGrants(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (devdomain.StatusCounts, error)
}

type InquiryCounter interface {
	CountUnreadInquiries(ctx context.Context) (int, error)
}

// Backlog queues published to the review_backlog gauge.
const (
	QueuePendingDevelopers = "pending_developers"
	QueueUnreadInquiries   = "unread_inquiries"
)

type Scheduler struct {
	developers RoleReconciler
	inquiries  InquiryCounter
	timeout    time.Duration

	mu   sync.Mutex
	cron *cron.Cron
}

func NewScheduler(developers RoleReconciler, inquiries InquiryCounter) *Scheduler {
	return &Scheduler{developers: developers, inquiries: inquiries, timeout: 30 * time.Second}
}

// Start schedules the maintenance run with a six-field (seconds first) cron
// spec and starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, s.runScheduled); err != nil {
		return fmt.Errorf("schedule maintenance %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	log.Printf("[jobs] scheduler started spec=%q", spec)
	return nil
}

// Stop stops scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		log.Printf("[jobs] stop timed out waiting for running job")
	}
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		log.Printf("[jobs] maintenance failed: %v", err)
	}
}

// Report summarises one maintenance run.
type Report struct {
	RolesGranted      int
	PendingDevelopers int
	UnreadInquiries   int
}

// RunOnce performs one maintenance pass. The backlog is still reported when
// the role repair fails.
func (s *Scheduler) RunOnce(ctx context.Context) (Report, error) {
	var rep Report
	start := time.Now()

	granted, reconcileErr := s.developers.ReconcileRoleGrants(ctx)
	if reconcileErr != nil {
		reconcileErr = fmt.Errorf("reconcile role grants: %w", reconcileErr)
	} else {
		rep.RolesGranted = granted
		if granted > 0 {
			log.Printf("[jobs] granted developer role to %d profile owner(s)", granted)
		}
	}

	counts, err := s.developers.CountByStatus(ctx)
	if err != nil {
		return rep, fmt.Errorf("count developers: %w", err)
	}
	unread, err := s.inquiries.CountUnreadInquiries(ctx)
	if err != nil {
		return rep, fmt.Errorf("count unread inquiries: %w", err)
	}

	rep.PendingDevelopers = counts.Pending
	rep.UnreadInquiries = unread
	metrics.SetBacklog(QueuePendingDevelopers, counts.Pending)
	metrics.SetBacklog(QueueUnreadInquiries, unread)

	log.Printf("[jobs] maintenance done pending_developers=%d unread_inquiries=%d took=%s",
		rep.PendingDevelopers, rep.UnreadInquiries, time.Since(start))
	return rep, reconcileErr
}
