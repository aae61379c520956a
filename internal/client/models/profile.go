package models

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type DonorProfile struct {
	Firstname         string    `json:"firstname" validate:"required"`
	Lastname          string    `json:"lastname" validate:"required"`
	DOB               Date      `json:"dob"`
	Gender            string    `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Email             string    `json:"email" validate:"required,email"`
	BloodType         BloodType `json:"blood_type" validate:"required,bloodtype"`
	PhoneNumber       string    `json:"phone_number" validate:"required"`
	ProfilePictureRef string    `json:"profile_picture,omitempty"`
}

type HospitalProfile struct {
	HospitalName   string         `json:"hospital_name"`
	StaffName      string         `json:"staff_name"`
	StaffID        string         `json:"staff_id"`
	Email          string         `json:"email"`
	ContactInfo    string         `json:"contact_info"`
	Address        string         `json:"address"`
	ApprovalStatus ApprovalStatus `json:"approval_status,omitempty"`
}

type DeliveryStaffProfile struct {
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Gender        string `json:"gender"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number"`
	VehicleType   string `json:"vehicle_type"`
}

// Profile is a tagged union keyed by Role: exactly the field matching Role
// is set.
type Profile struct {
	Role          Role
	Donor         *DonorProfile
	Hospital      *HospitalProfile
	DeliveryStaff *DeliveryStaffProfile
}

func NewDonorProfile(p DonorProfile) Profile {
	return Profile{Role: RoleDonor, Donor: &p}
}

func NewHospitalProfile(p HospitalProfile) Profile {
	return Profile{Role: RoleHospitalStaff, Hospital: &p}
}

func NewDeliveryStaffProfile(p DeliveryStaffProfile) Profile {
	return Profile{Role: RoleDeliveryStaff, DeliveryStaff: &p}
}

// Kind is the role the profile belongs to.
func (p Profile) Kind() Role { return p.Role }

// Value returns the role-specific payload.
func (p Profile) Value() any {
	switch p.Role {
	case RoleDonor:
		return p.Donor
	case RoleHospitalStaff:
		return p.Hospital
	case RoleDeliveryStaff:
		return p.DeliveryStaff
	}
	return nil
}
