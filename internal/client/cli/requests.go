package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/services"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

func (a *App) Requests(ctx context.Context, _ []string) error {
	list, err := a.requestService.List(ctx)
	if err != nil {
		return err
	}
	a.printRequests(list)
	return nil
}

// Filter narrows the loaded list without touching it; no text shows all.
func (a *App) Filter(_ context.Context, args []string) error {
	a.printRequests(a.requestService.Filter(strings.Join(args, " ")))
	return nil
}

func (a *App) printRequests(list []models.BloodRequest) {
	if len(list) == 0 {
		a.println("No blood requests.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tQUANTITY\tPRIORITY\tSTATUS\tHOSPITAL")
	for _, r := range list {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			r.ID, r.BloodType, r.Quantity, r.PriorityLevel, r.Status, r.HospitalName)
	}
	_ = w.Flush()
}

func (a *App) NewRequest(ctx context.Context, _ []string) error {
	in, err := a.askAll("Blood type", "Quantity")
	if err != nil {
		return err
	}
	priority, err := a.askDefault("Priority (normal, urgent)", string(models.PriorityNormal))
	if err != nil {
		return err
	}
	qty, err := validation.ParseQuantity("quantity", in[1])
	if err != nil {
		return err
	}

	created, err := a.requestService.Create(ctx, models.BloodRequestInput{
		BloodType:     bloodType(in[0]),
		Quantity:      qty,
		PriorityLevel: models.Priority(strings.ToLower(priority)),
	})
	if err != nil {
		return err
	}
	a.printf("Blood request %d created (%s).\n", created.ID, created.Status)
	return nil
}

// Edit opens the draft of one request. Only one request is edited at a time.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := validation.ParseID("id", args[0])
	if err != nil {
		return err
	}

	draft, err := a.requestService.BeginEdit(id)
	if errors.Is(err, services.ErrRequestNotFound) && len(a.requestService.All()) == 0 {
		if _, err := a.requestService.List(ctx); err != nil {
			return err
		}
		draft, err = a.requestService.BeginEdit(id)
	}
	if err != nil {
		return err
	}

	status, err := a.askDefault("Status (Pending, Completed, Cancelled)", string(draft.Status))
	if err != nil {
		return err
	}
	qty, err := a.askDefault("Quantity", fmt.Sprint(draft.Quantity))
	if err != nil {
		return err
	}

	st, ok := models.ParseRequestStatus(status)
	if !ok {
		st = models.RequestStatus(status)
	}
	q, err := validation.ParseQuantity("quantity", qty)
	if err != nil {
		return err
	}
	if err := a.requestService.SetDraftStatus(st); err != nil {
		return err
	}
	if err := a.requestService.SetDraftQuantity(q); err != nil {
		return err
	}
	a.printf("Editing request %d. Type 'save' to submit or 'cancel' to discard.\n", id)
	return nil
}

func (a *App) Save(ctx context.Context, _ []string) error {
	id, _, ok := a.requestService.Draft()
	if !ok {
		return services.ErrNoDraft
	}
	saved, err := a.requestService.SaveEdit(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Blood request %d saved (%s, %d units).\n", saved.ID, saved.Status, saved.Quantity)
	return nil
}

func (a *App) Cancel(context.Context, []string) error {
	if _, _, ok := a.requestService.Draft(); !ok {
		return services.ErrNoDraft
	}
	a.requestService.CancelEdit()
	a.println("Edit discarded.")
	return nil
}
