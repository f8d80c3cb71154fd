package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/router"
)

// View is the screen for one route. Load fetches what the view needs and
// reports only failures the caller must see; API failures a user should read
// are kept and rendered instead. Render writes the current state as text.
type View interface {
	Load(ctx context.Context) error
	Render(w io.Writer) error
}

func (a *App) newView(m router.Match) (View, error) {
	switch m.Route.Name {
	case router.Dashboard:
		return newDashboardView(a, m), nil
	case router.Event:
		id, err := m.IntParam("id")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, m.Path)
		}
		return &eventView{app: a, id: id}, nil
	case router.Login:
		return &loginView{app: a}, nil
	case router.AdminDashboard:
		return &adminDashboardView{app: a, route: m.Route}, nil
	case router.Users:
		return &usersView{app: a, route: m.Route}, nil
	case router.Categories:
		return &categoriesView{app: a, route: m.Route}, nil
	case router.Events:
		return &manageEventsView{app: a, route: m.Route}, nil
	case router.TagEvents:
		id, err := m.IntParam("id")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, m.Path)
		}
		return &tagEventsView{app: a, id: id}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, m.Path)
	}
}

// ------------------------------
// Rendering helpers
// ------------------------------

const dateLayout = "2006-01-02 15:04"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// header prints the title line and who is logged in.
func (a *App) header(w io.Writer, title string) {
	who := "anonymous"
	if u := a.Auth.User(); u != nil {
		who = fmt.Sprintf("%s (%s)", u.FullName(), u.Type)
	}
	fmt.Fprintf(w, "== %s ==  %s %s\n", title, a.icons.Glyph(IconPerson), who)
}

func errorLine(w io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintf(w, "! %s\n", msg)
	}
}

// denied prints the access notice views show for routes not meant for the
// current user. It returns true when the view must stop rendering.
func (a *App) denied(w io.Writer, rt router.Route) bool {
	if router.Allowed(rt, a.Auth.User()) {
		return false
	}
	fmt.Fprintf(w, "Access denied: %s is for %s.\n", rt.Title, rt.Audience)
	return true
}

func (a *App) eventTable(w io.Writer, events []client.Event) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\t%s DATE\tLOCATION\tCATEGORY\t%s VIEWS\n",
		a.icons.Glyph(IconCalendar), a.icons.Glyph(IconViews))
	for _, ev := range events {
		category := "-"
		if ev.Category != nil {
			category = ev.Category.Name
		} else if id, ok := ev.CategoryRef(); ok {
			category = "#" + strconv.Itoa(id)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			ev.ID, ev.Name, formatDate(ev.EventDate), ev.Location, category, ev.Views)
	}
	return tw.Flush()
}

func tagNames(tags []client.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
