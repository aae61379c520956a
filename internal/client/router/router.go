// Package router gates which views are reachable for the current role.
//
// The router is a small state machine: Unauthenticated, Donor,
// DeliveryStaff and HospitalStaff. Login moves to a role state and Logout
// returns to Unauthenticated from anywhere. Navigation to a view outside the
// current state's set is redirected to a login screen.
package router

import (
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

type State int

const (
	Unauthenticated State = iota
	Donor
	DeliveryStaff
	HospitalStaff
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Donor:
		return "donor"
	case DeliveryStaff:
		return "delivery_staff"
	case HospitalStaff:
		return "hospital_staff"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Role returns the role of an authenticated state.
func (s State) Role() (models.Role, bool) {
	switch s {
	case Donor:
		return models.RoleDonor, true
	case DeliveryStaff:
		return models.RoleDeliveryStaff, true
	case HospitalStaff:
		return models.RoleHospitalStaff, true
	}
	return "", false
}

func StateFor(role models.Role) (State, error) {
	switch role {
	case models.RoleDonor:
		return Donor, nil
	case models.RoleDeliveryStaff:
		return DeliveryStaff, nil
	case models.RoleHospitalStaff:
		return HospitalStaff, nil
	}
	return Unauthenticated, fmt.Errorf("%w: %q", models.ErrUnknownRole, role)
}

// Decision is the outcome of a navigation attempt.
type Decision struct {
	View       View
	Redirected bool
}

// Router is safe for concurrent use.
type Router struct {
	mu      sync.RWMutex
	state   State
	current View
}

func New() *Router {
	return &Router{state: Unauthenticated, current: ViewHome}
}

func (r *Router) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Current is the last view reached through Navigate, Login or Logout.
func (r *Router) Current() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Login enters the state of role and lands on its initial view.
func (r *Router) Login(role models.Role) (View, error) {
	st, err := StateFor(role)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = st
	r.current = landing[st]
	return r.current, nil
}

func (r *Router) Logout() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Unauthenticated
	r.current = ViewHome
	return r.current
}

// Sync aligns the router with the session store, e.g. after a session
// was restored from storage.
func (r *Router) Sync(role models.Role, ok bool) View {
	if !ok {
		return r.Logout()
	}
	v, err := r.Login(role)
	if err != nil {
		return r.Logout()
	}
	return v
}

// Initial is the landing view of the current state.
func (r *Router) Initial() View {
	return landing[r.State()]
}

// Navigate resolves v against the current state.
func (r *Router) Navigate(v View) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := Resolve(r.state, v)
	r.current = d.View
	return d
}

// Resolve decides where an attempt to reach v from state st ends up.
// Public views are always reachable. A role view outside st's set leads to
// the login screen of the role owning it; hospital views share the global
// hospital login. Unknown views fall back to home.
func Resolve(st State, v View) Decision {
	owner, known := owners[v]
	if !known {
		return Decision{View: ViewHome, Redirected: true}
	}
	if owner == Unauthenticated || owner == st {
		return Decision{View: v}
	}
	return Decision{View: loginFor[owner], Redirected: true}
}

// Allowed reports whether st may show v without a redirect.
func Allowed(st State, v View) bool {
	return !Resolve(st, v).Redirected
}
