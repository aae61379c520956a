package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

func (a *App) Inventory(ctx context.Context, _ []string) error {
	rows, err := a.inventoryService.LoadSummary(ctx)
	if err != nil {
		return err
	}
	a.printSummary(rows)
	return nil
}

func (a *App) printSummary(rows []models.BloodTypeSummary) {
	if len(rows) == 0 {
		a.println("Inventory is empty.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tUNITS\t")
	for _, r := range rows {
		alert := ""
		if r.LowStockAlert {
			alert = "LOW STOCK"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.BloodType, r.TotalQuantity, alert)
	}
	_ = w.Flush()
}

func (a *App) Units(ctx context.Context, args []string) error {
	bt, err := models.ParseBloodType(args[0])
	if err != nil {
		return validation.New("blood_type", "must be one of: "+joinBloodTypes())
	}
	units, err := a.inventoryService.SelectType(ctx, bt)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		a.printf("No units of %s.\n", bt)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUANTITY\tEXPIRES\tDAYS LEFT")
	for _, u := range units {
		left := fmt.Sprint(u.DaysToExpire)
		if u.DaysToExpire < 0 {
			left = "expired"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", u.ID, u.Quantity, u.ExpirationDate, left)
	}
	return w.Flush()
}

// unitInput prompts for a unit; the selected type is offered as default.
func (a *App) unitInput() (models.BloodUnitInput, error) {
	def := ""
	if bt, ok := a.inventoryService.Selected(); ok {
		def = string(bt)
	}
	bt, err := a.askDefault("Blood type", def)
	if err != nil {
		return models.BloodUnitInput{}, err
	}
	in, err := a.askAll("Quantity", "Expiration date (YYYY-MM-DD)")
	if err != nil {
		return models.BloodUnitInput{}, err
	}

	qty, err := validation.ParseQuantity("quantity", in[0])
	if err != nil {
		return models.BloodUnitInput{}, err
	}
	exp, err := optionalDate("expiration_date", in[1])
	if err != nil {
		return models.BloodUnitInput{}, err
	}
	return models.BloodUnitInput{BloodType: bloodType(bt), Quantity: qty, ExpirationDate: exp}, nil
}

func (a *App) AddUnit(ctx context.Context, _ []string) error {
	in, err := a.unitInput()
	if err != nil {
		return err
	}
	if err := a.inventoryService.Create(ctx, in); err != nil {
		return err
	}
	a.println("Blood unit added.")
	a.printSummary(a.inventoryService.Summary())
	return nil
}

func (a *App) EditUnit(ctx context.Context, args []string) error {
	id, err := validation.ParseID("id", args[0])
	if err != nil {
		return err
	}
	in, err := a.unitInput()
	if err != nil {
		return err
	}
	if err := a.inventoryService.Update(ctx, id, in); err != nil {
		return err
	}
	a.printf("Blood unit %d updated.\n", id)
	a.printSummary(a.inventoryService.Summary())
	return nil
}

func (a *App) DeleteUnit(ctx context.Context, args []string) error {
	id, err := validation.ParseID("id", args[0])
	if err != nil {
		return err
	}
	answer, err := a.ask(fmt.Sprintf("Delete blood unit %d? (y/N)", id))
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.println("Aborted.")
		return nil
	}
	if err := a.inventoryService.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Blood unit %d deleted.\n", id)
	a.printSummary(a.inventoryService.Summary())
	return nil
}

func joinBloodTypes() string {
	all := models.AllBloodTypes()
	s := make([]string, len(all))
	for i, bt := range all {
		s[i] = string(bt)
	}
	return strings.Join(s, ", ")
}
