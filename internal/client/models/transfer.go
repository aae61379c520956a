package models

// TransferRequest asks the backend to move blood between hospitals.
type TransferRequest struct {
	PatientName       string    `json:"patient_name" validate:"required"`
	BloodType         BloodType `json:"blood_type" validate:"required,bloodtype"`
	DonorHospital     string    `json:"donor_hospital" validate:"required"`
	RecipientHospital string    `json:"recipient_hospital" validate:"required,nefield=DonorHospital"`
}
