package router

import "strings"

// View names a screen of the application.
type View string

// public
const (
	ViewHome             View = "home"
	ViewDonorLogin       View = "donor_login"
	ViewDeliveryLogin    View = "delivery_login"
	ViewHospitalLogin    View = "hospital_login"
	ViewRegisterDonor    View = "register_donor"
	ViewRegisterDelivery View = "register_delivery"
	ViewRegisterHospital View = "register_hospital"
	ViewConfirmation     View = "confirmation"
)

// donor
const (
	ViewDonorDashboard   View = "donor_dashboard"
	ViewDonorHome        View = "donor_home"
	ViewHospitals        View = "hospitals"
	ViewDonationRequests View = "donation_requests"
	ViewDonorProfile     View = "donor_profile"
)

// delivery staff
const (
	ViewDeliveryDashboard View = "delivery_dashboard"
)

// hospital staff
const (
	ViewDashboard       View = "dashboard"
	ViewInventory       View = "inventory"
	ViewCreateRequest   View = "create_request"
	ViewManageRequests  View = "manage_requests"
	ViewTransfer        View = "transfer"
	ViewHospitalProfile View = "hospital_profile"
)

var viewsByState = map[State][]View{
	Unauthenticated: {
		ViewHome, ViewDonorLogin, ViewDeliveryLogin, ViewHospitalLogin,
		ViewRegisterDonor, ViewRegisterDelivery, ViewRegisterHospital, ViewConfirmation,
	},
	Donor: {
		ViewDonorDashboard, ViewDonorHome, ViewHospitals, ViewDonationRequests, ViewDonorProfile,
	},
	DeliveryStaff: {
		ViewDeliveryDashboard,
	},
	HospitalStaff: {
		ViewDashboard, ViewInventory, ViewCreateRequest, ViewManageRequests, ViewTransfer, ViewHospitalProfile,
	},
}

var landing = map[State]View{
	Unauthenticated: ViewHome,
	Donor:           ViewDonorDashboard,
	DeliveryStaff:   ViewDeliveryDashboard,
	HospitalStaff:   ViewDashboard,
}

var loginFor = map[State]View{
	Donor:         ViewDonorLogin,
	DeliveryStaff: ViewDeliveryLogin,
	HospitalStaff: ViewHospitalLogin,
}

// owners maps each view to the state whose set contains it; public views
// are owned by Unauthenticated.
var owners = func() map[View]State {
	m := make(map[View]State)
	for st, views := range viewsByState {
		for _, v := range views {
			m[v] = st
		}
	}
	return m
}()

// Views lists what st can reach: the public views plus its own set.
func Views(st State) []View {
	out := append([]View(nil), viewsByState[Unauthenticated]...)
	if st != Unauthenticated {
		out = append(out, viewsByState[st]...)
	}
	return out
}

func ParseView(s string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	_, ok := owners[v]
	return v, ok
}

// LoginView is the login screen for role state st.
func LoginView(st State) View {
	if v, ok := loginFor[st]; ok {
		return v
	}
	return ViewHome
}
