package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

func (a *App) Offers(ctx context.Context, _ []string) error {
	list, err := a.donationService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No donation requests.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBLOOD\tUNITS\tHOSPITAL\tLOCATION\tDATE\t")
	for _, o := range list {
		mark := ""
		if o.Accepted {
			mark = "ACCEPTED"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.BloodGroup, o.Units, o.HospitalName, o.Location, o.Date.Format(time.DateOnly), mark)
	}
	return w.Flush()
}

// Receive records an incoming donation request entered by hand, standing in
// for a push notification.
func (a *App) Receive(ctx context.Context, _ []string) error {
	in, err := a.askAll("Blood group", "Units", "Hospital", "Location", "Date (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	d, err := optionalDate("date", in[4])
	if err != nil {
		return err
	}
	var date time.Time
	if d != nil {
		date = d.Time
	}

	o, err := a.donationService.Receive(ctx, models.DonationOffer{
		BloodGroup:   bloodType(in[0]),
		Units:        in[1],
		HospitalName: in[2],
		Location:     in[3],
		Date:         date,
	})
	if err != nil {
		return err
	}
	a.printf("Donation request %s received.\n", o.ID)
	return nil
}

func (a *App) Accept(ctx context.Context, args []string) error {
	if err := a.donationService.Accept(ctx, args[0]); err != nil {
		return err
	}
	a.println("Donation request accepted. Use 'directions' to find the hospital.")
	return nil
}

func (a *App) Unaccept(ctx context.Context, args []string) error {
	if err := a.donationService.CancelAccept(ctx, args[0]); err != nil {
		return err
	}
	a.println("Acceptance cancelled.")
	return nil
}

func (a *App) Clear(ctx context.Context, args []string) error {
	if err := a.donationService.Clear(ctx, args[0]); err != nil {
		return err
	}
	a.println("Donation request cleared.")
	return nil
}

func (a *App) Directions(ctx context.Context, args []string) error {
	link, err := a.donationService.Directions(ctx, args[0])
	if err != nil {
		return err
	}
	a.println(link)
	return nil
}
