package cli

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/router"
)

// Dashboard prints the landing overview of the current role. Its loads run
// in parallel; the first failure cancels the other.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	switch a.router.State() {
	case router.HospitalStaff:
		return a.hospitalDashboard(ctx)
	case router.Donor:
		return a.donorDashboard(ctx)
	}
	a.println("Delivery dashboard: no deliveries are assigned to you.")
	return nil
}

func (a *App) hospitalDashboard(ctx context.Context) error {
	var (
		summary  []models.BloodTypeSummary
		requests []models.BloodRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = a.inventoryService.LoadSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = a.requestService.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	total, low := 0, 0
	for _, s := range summary {
		total += s.TotalQuantity
		if s.LowStockAlert {
			low++
		}
	}
	pending, urgent := 0, 0
	for _, r := range requests {
		if st, ok := models.ParseRequestStatus(string(r.Status)); ok && st == models.StatusPending {
			pending++
			if r.PriorityLevel == models.PriorityUrgent {
				urgent++
			}
		}
	}

	a.printf("Units in stock: %d (%d blood types low)\n", total, low)
	a.printf("Pending requests: %d (%d urgent)\n", pending, urgent)
	return nil
}

func (a *App) donorDashboard(ctx context.Context) error {
	var (
		profile models.Profile
		offers  []models.DonationOffer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = a.profileService.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = a.donationService.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	accepted := 0
	for _, o := range offers {
		if o.Accepted {
			accepted++
		}
	}
	if profile.Donor != nil {
		a.printf("Hello, %s (%s).\n", profile.Donor.Firstname, profile.Donor.BloodType)
	}
	a.printf("Donation requests: %d (%d accepted)\n", len(offers), accepted)
	return nil
}
