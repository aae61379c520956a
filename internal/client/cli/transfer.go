package cli

import (
	"context"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

func (a *App) Transfer(ctx context.Context, _ []string) error {
	in, err := a.askAll("Patient name", "Blood type", "Donor hospital", "Recipient hospital")
	if err != nil {
		return err
	}
	msg, err := a.transferService.Transfer(ctx, models.TransferRequest{
		PatientName:       in[0],
		BloodType:         bloodType(in[1]),
		DonorHospital:     in[2],
		RecipientHospital: in[3],
	})
	if err != nil {
		return err
	}
	a.println(msg)
	return nil
}
