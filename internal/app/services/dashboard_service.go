package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pioneer/admissions/internal/app/models/dto"
)

// Counter is implemented by every store the dashboard reports on
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardCounters names the stores behind each dashboard figure
type DashboardCounters struct {
	Applications Counter
	Admins       Counter
	Contacts     Counter
	Datesheets   Counter
	Messages     Counter
	Syllabus     Counter
	Assignments  Counter
}

// DashboardService reports record counts for the admin dashboard
type DashboardService struct {
	counters DashboardCounters
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(counters DashboardCounters) *DashboardService {
	return &DashboardService{counters: counters}
}

func count(ctx context.Context, c Counter, what string) (int64, error) {
	n, err := c.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

// Totals runs every count concurrently
func (s *DashboardService) Totals(ctx context.Context) (*dto.TotalsResponse, error) {
	var out dto.TotalsResponse
	g, gctx := errgroup.WithContext(ctx)

	targets := []struct {
		counter Counter
		what    string
		dst     *int64
	}{
		{s.counters.Applications, "applications", &out.Applications},
		{s.counters.Admins, "admins", &out.Admins},
		{s.counters.Contacts, "contacts", &out.Contacts},
		{s.counters.Datesheets, "datesheets", &out.Datesheets},
		{s.counters.Messages, "messages", &out.Messages},
		{s.counters.Syllabus, "syllabus", &out.Syllabus},
		{s.counters.Assignments, "assignments", &out.Assignments},
	}
	for _, t := range targets {
		t := t
		g.Go(func() error {
			n, err := count(gctx, t.counter, t.what)
			if err != nil {
				return err
			}
			*t.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DashboardService) single(ctx context.Context, c Counter, what string) (*dto.CountResponse, error) {
	n, err := count(ctx, c, what)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Total: n}, nil
}

// Applications returns the number of applications
func (s *DashboardService) Applications(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Applications, "applications")
}

// Admins returns the number of administrator accounts
func (s *DashboardService) Admins(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Admins, "admins")
}

// Contacts returns the number of contact-form submissions
func (s *DashboardService) Contacts(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Contacts, "contacts")
}

// Datesheets returns the number of datesheets
func (s *DashboardService) Datesheets(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Datesheets, "datesheets")
}

// Messages returns the number of announcements
func (s *DashboardService) Messages(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Messages, "messages")
}

// Syllabus returns the number of syllabus PDFs
func (s *DashboardService) Syllabus(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Syllabus, "syllabus")
}

// Assignments returns the number of assignments across all classes
func (s *DashboardService) Assignments(ctx context.Context) (*dto.CountResponse, error) {
	return s.single(ctx, s.counters.Assignments, "assignments")
}
