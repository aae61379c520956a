package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/router"
	"github.com/dmitrijs2005/bloodlink/internal/client/services"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

// describeError turns err into the text shown to the user.
func describeError(err error) string {
	var (
		authErr *client.AuthError
		valErr  *validation.Error
		srvErr  *client.ServerError
	)

	switch {
	case errors.As(err, &authErr):
		return authErr.Error()
	case errors.As(err, &valErr):
		return fieldLines("Please correct the following:", valErr.Fields)
	case errors.Is(err, services.ErrStaleSummary):
		return "Saved, but the inventory summary could not be refreshed. Run 'inventory' to retry."
	case errors.Is(err, client.ErrUnauthenticated):
		return "You are not logged in."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired or was rejected. Please log in again."
	case errors.Is(err, client.ErrTimeout):
		return "The server did not respond in time. Please try again."
	case errors.Is(err, client.ErrUnavailable):
		return "Network error: the server could not be reached."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.As(err, &srvErr):
		if len(srvErr.Fields) > 0 && srvErr.Detail == "" {
			fields := make(map[string]string, len(srvErr.Fields))
			for _, name := range srvErr.FieldNames() {
				fields[name] = srvErr.Field(name)
			}
			return fieldLines("The server rejected the request:", fields)
		}
		return srvErr.Banner()
	}
	return "Error: " + err.Error()
}

func fieldLines(header string, fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(header)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, fields[name])
	}
	return b.String()
}

// report prints err. A session the backend no longer accepts is ended
// locally and the user lands on the login screen of the role they had.
func (a *App) report(ctx context.Context, err error) {
	a.println(describeError(err))

	var authErr *client.AuthError
	if errors.As(err, &authErr) {
		return
	}
	if !errors.Is(err, client.ErrUnauthenticated) && !errors.Is(err, client.ErrUnauthorized) {
		return
	}

	login := router.LoginView(a.router.State())
	_ = a.authService.Logout(ctx)
	a.router.Logout()
	a.router.Navigate(login)
	a.printf("Redirected to %s. %s\n", login, loginHint(login))
}
