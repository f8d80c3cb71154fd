package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/router"
)

// The management views check the current role themselves and skip loading
// when the route is not meant for the user.

type adminDashboardView struct {
	app   *App
	route router.Route

	events, categories, users int
	errMsg                    string
}

func (v *adminDashboardView) Load(ctx context.Context) error {
	a := v.app
	if !router.Allowed(v.route, a.Auth.User()) {
		return nil
	}
	v.errMsg = ""
	page, err := a.api.ListEvents(ctx, client.EventQuery{PageParams: client.FirstPage})
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.events = page.Total
	if v.events < len(page.Data) {
		v.events = len(page.Data)
	}
	cats, err := a.api.ListCategories(ctx)
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.categories = len(cats)
	if a.Auth.IsAdmin() {
		users, err := a.api.ListUsers(ctx)
		if err != nil {
			v.errMsg = client.ErrorMessage(err)
			return nil
		}
		v.users = len(users)
	}
	return nil
}

func (v *adminDashboardView) Render(w io.Writer) error {
	a := v.app
	a.header(w, "Admin dashboard")
	if a.denied(w, v.route) {
		return nil
	}
	errorLine(w, v.errMsg)
	fmt.Fprintf(w, "%s Events: %d  (go /admin/events)\n", a.icons.Glyph(IconCalendar), v.events)
	fmt.Fprintf(w, "%s Categories: %d  (go /admin/categories)\n", a.icons.Glyph(IconCategory), v.categories)
	if a.Auth.IsAdmin() {
		fmt.Fprintf(w, "%s Users: %d  (go /admin/users)\n", a.icons.Glyph(IconUsers), v.users)
	}
	return nil
}

type usersView struct {
	app   *App
	route router.Route

	users  []client.User
	errMsg string
}

func (v *usersView) Load(ctx context.Context) error {
	if !router.Allowed(v.route, v.app.Auth.User()) {
		return nil
	}
	v.errMsg = ""
	users, err := v.app.api.ListUsers(ctx)
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.users = users
	return nil
}

func (v *usersView) Render(w io.Writer) error {
	a := v.app
	a.header(w, "Users")
	if a.denied(w, v.route) {
		return nil
	}
	errorLine(w, v.errMsg)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tTYPE\tSTATUS")
	for _, u := range v.users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.Type, u.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s rm-user <id>\n", a.icons.Glyph(IconTrash))
	return err
}

type categoriesView struct {
	app   *App
	route router.Route

	categories []client.Category
	errMsg     string
}

func (v *categoriesView) Load(ctx context.Context) error {
	if !router.Allowed(v.route, v.app.Auth.User()) {
		return nil
	}
	v.errMsg = ""
	cats, err := v.app.api.ListCategories(ctx)
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.categories = cats
	return nil
}

func (v *categoriesView) Render(w io.Writer) error {
	a := v.app
	a.header(w, "Categories")
	if a.denied(w, v.route) {
		return nil
	}
	errorLine(w, v.errMsg)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, c := range v.categories {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s new-category <name> [description]  %s rm-category <id>\n",
		a.icons.Glyph(IconEdit), a.icons.Glyph(IconTrash))
	return err
}

type manageEventsView struct {
	app   *App
	route router.Route

	events []client.Event
	errMsg string
}

func (v *manageEventsView) Load(ctx context.Context) error {
	if !router.Allowed(v.route, v.app.Auth.User()) {
		return nil
	}
	v.errMsg = ""
	page, err := v.app.api.ListEvents(ctx, client.EventQuery{PageParams: client.FirstPage})
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.events = page.Data
	return nil
}

func (v *manageEventsView) Render(w io.Writer) error {
	a := v.app
	a.header(w, "Manage events")
	if a.denied(w, v.route) {
		return nil
	}
	errorLine(w, v.errMsg)
	if err := a.eventTable(w, v.events); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s rm-event <id>\n", a.icons.Glyph(IconTrash))
	return err
}
