package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/bloodlink/internal/client/router"
)

// command is one REPL entry. views lists the router views the command can
// render; the first one reachable from the current state is used. A command
// without views is available everywhere.
type command struct {
	name  string
	usage string
	args  int
	views []router.View
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{name: "login", usage: "login [donor|delivery|hospital]", run: (*App).Login},
	{name: "register", usage: "register [donor|delivery|hospital]", run: (*App).Register},
	{name: "logout", usage: "logout", run: (*App).Logout},
	{name: "whoami", usage: "whoami", run: (*App).WhoAmI},
	{name: "metrics", usage: "metrics [name]", run: (*App).Metrics},
	{name: "dashboard", usage: "dashboard", run: (*App).Dashboard,
		views: []router.View{router.ViewDashboard, router.ViewDonorDashboard, router.ViewDeliveryDashboard}},
	{name: "profile", usage: "profile", run: (*App).Profile,
		views: []router.View{router.ViewDonorProfile, router.ViewHospitalProfile, router.ViewDeliveryDashboard}},

	{name: "inventory", usage: "inventory", run: (*App).Inventory, views: []router.View{router.ViewInventory}},
	{name: "units", usage: "units <blood type>", args: 1, run: (*App).Units, views: []router.View{router.ViewInventory}},
	{name: "addunit", usage: "addunit", run: (*App).AddUnit, views: []router.View{router.ViewInventory}},
	{name: "editunit", usage: "editunit <id>", args: 1, run: (*App).EditUnit, views: []router.View{router.ViewInventory}},
	{name: "delunit", usage: "delunit <id>", args: 1, run: (*App).DeleteUnit, views: []router.View{router.ViewInventory}},

	{name: "requests", usage: "requests", run: (*App).Requests, views: []router.View{router.ViewManageRequests}},
	{name: "filter", usage: "filter <text>", run: (*App).Filter, views: []router.View{router.ViewManageRequests}},
	{name: "newrequest", usage: "newrequest", run: (*App).NewRequest, views: []router.View{router.ViewCreateRequest}},
	{name: "edit", usage: "edit <id>", args: 1, run: (*App).Edit, views: []router.View{router.ViewManageRequests}},
	{name: "save", usage: "save", run: (*App).Save, views: []router.View{router.ViewManageRequests}},
	{name: "cancel", usage: "cancel", run: (*App).Cancel, views: []router.View{router.ViewManageRequests}},
	{name: "transfer", usage: "transfer", run: (*App).Transfer, views: []router.View{router.ViewTransfer}},

	{name: "offers", usage: "offers", run: (*App).Offers, views: []router.View{router.ViewDonationRequests}},
	{name: "receive", usage: "receive", run: (*App).Receive, views: []router.View{router.ViewDonationRequests}},
	{name: "accept", usage: "accept <id>", args: 1, run: (*App).Accept, views: []router.View{router.ViewDonationRequests}},
	{name: "unaccept", usage: "unaccept <id>", args: 1, run: (*App).Unaccept, views: []router.View{router.ViewDonationRequests}},
	{name: "clear", usage: "clear <id>", args: 1, run: (*App).Clear, views: []router.View{router.ViewDonationRequests}},
	{name: "directions", usage: "directions <id>", args: 1, run: (*App).Directions, views: []router.View{router.ViewDonationRequests}},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// available reports whether c can run in the router's current state.
func (c command) available(st router.State) bool {
	if len(c.views) == 0 {
		return true
	}
	for _, v := range c.views {
		if router.Allowed(st, v) {
			return true
		}
	}
	return false
}

// runREPL reads commands from a.reader until EOF, "exit" or "quit".
//
// Errors returned by command handlers are reported to the user here and do
// not stop the loop.
func runREPL(ctx context.Context, a *App) {
	for {
		a.printf("bl %s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			a.println()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			a.println("Bye!")
			return
		case "help":
			a.help()
		default:
			a.dispatch(ctx, parts[0], parts[1:])
		}

		if err != nil {
			return
		}
	}
}

func (a *App) help() {
	st := a.router.State()
	names := []string{"help"}
	for _, c := range commands {
		if c.available(st) {
			names = append(names, c.usage)
		}
	}
	names = append(names, "exit")
	a.println("Available commands:")
	for _, n := range names {
		a.println("  " + n)
	}
}

// dispatch navigates to the command's view and runs it. A refused view is
// reported together with the screen the router redirected to.
func (a *App) dispatch(ctx context.Context, name string, args []string) {
	c, ok := lookup(name)
	if !ok {
		a.println("Unknown command:", name)
		return
	}

	if len(c.views) > 0 {
		view := c.views[0]
		st := a.router.State()
		for _, v := range c.views {
			if router.Allowed(st, v) {
				view = v
				break
			}
		}
		if d := a.router.Navigate(view); d.Redirected {
			a.printf("%s is not available, redirected to %s. %s\n", name, d.View, loginHint(d.View))
			return
		}
	}

	if len(args) < c.args {
		a.println("Usage:", c.usage)
		return
	}

	if err := c.run(a, ctx, args); err != nil {
		a.report(ctx, err)
	}
}

func loginHint(v router.View) string {
	switch v {
	case router.ViewDonorLogin:
		return "Use 'login donor'."
	case router.ViewDeliveryLogin:
		return "Use 'login delivery'."
	case router.ViewHospitalLogin:
		return "Use 'login hospital'."
	}
	return "Type 'help' for commands."
}
