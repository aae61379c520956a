package models

import "io"

// DonorRegistration is posted as JSON to /register/donor/.
type DonorRegistration struct {
	Firstname       string    `json:"firstname" validate:"required"`
	Lastname        string    `json:"lastname" validate:"required"`
	DOB             *Date     `json:"dob" validate:"required"`
	Gender          string    `json:"gender" validate:"required,oneof=Male Female Other"`
	Email           string    `json:"email" validate:"required,email"`
	BloodType       BloodType `json:"blood_type" validate:"required,bloodtype"`
	PhoneNumber     string    `json:"phone_number" validate:"required"`
	Password        string    `json:"password" validate:"required,min=8"`
	ConfirmPassword string    `json:"-" form:"confirm_password" validate:"required,eqfield=Password"`
}

// DeliveryStaffRegistration is posted as JSON to /register/deliverystaff/.
type DeliveryStaffRegistration struct {
	Firstname       string `json:"firstname" validate:"required"`
	Lastname        string `json:"lastname" validate:"required"`
	Gender          string `json:"gender" validate:"required,oneof=Male Female Other"`
	Email           string `json:"email" validate:"required,email"`
	LicenseNumber   string `json:"license_number" validate:"required"`
	VehicleType     string `json:"vehicle_type" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" form:"confirm_password" validate:"required,eqfield=Password"`
}

// Document is an uploaded file attached to a hospital registration.
type Document struct {
	Name    string
	Content io.Reader
}

// HospitalRegistration is posted as multipart/form-data to
// /register/hospital/; Document becomes the "documents" file part.
type HospitalRegistration struct {
	HospitalName string    `json:"hospital_name" validate:"required"`
	StaffName    string    `json:"staff_name" validate:"required"`
	StaffID      string    `json:"staff_id" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	ContactInfo  string    `json:"contact_info" validate:"required"`
	Address      string    `json:"address" validate:"required"`
	Password     string    `json:"password" validate:"required,min=8"`
	Document     *Document `json:"documents" validate:"required"`
}

// FormFields returns the non-file multipart fields in a stable order.
func (h HospitalRegistration) FormFields() [][2]string {
	return [][2]string{
		{"hospital_name", h.HospitalName},
		{"staff_name", h.StaffName},
		{"staff_id", h.StaffID},
		{"email", h.Email},
		{"contact_info", h.ContactInfo},
		{"address", h.Address},
		{"password", h.Password},
	}
}
