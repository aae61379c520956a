package services

import (
	"context"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

type TransferService interface {
	Transfer(ctx context.Context, t models.TransferRequest) (string, error)
}

type transferService struct {
	client client.Client
}

func NewTransferService(c client.Client) TransferService {
	return &transferService{client: c}
}

func (s *transferService) Transfer(ctx context.Context, t models.TransferRequest) (string, error) {
	if err := validation.Struct(t); err != nil {
		return "", err
	}
	msg, err := s.client.Transfer(ctx, t)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Blood transfer initiated."
	}
	return msg, nil
}
