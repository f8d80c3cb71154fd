package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/router"
	"github.com/eventboard/eventboard/store"
)

// dashboardView lists events for the current view mode. The "all" list is
// fetched here; the other two modes read the event store.
type dashboardView struct {
	app        *App
	categoryID int // from ?category=, 0 when absent

	all        []client.Event
	total      int
	categories []client.Category
	errMsg     string
}

func newDashboardView(a *App, m router.Match) *dashboardView {
	d := &dashboardView{app: a}
	if raw := m.Query.Get("category"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			d.categoryID = id
		}
	}
	return d
}

func (d *dashboardView) Load(ctx context.Context) error {
	api := d.app.api
	d.errMsg = ""

	cats, err := api.ListCategories(ctx)
	if err != nil {
		d.errMsg = client.ErrorMessage(err)
	} else {
		d.categories = cats
	}

	st := d.app.Events.State()
	switch st.ViewMode {
	case store.ViewMostViewed:
		d.app.Events.LoadMostViewed(ctx)
	case store.ViewCategory:
		if d.categoryID > 0 {
			d.app.Events.LoadByCategory(ctx, d.categoryID)
		}
	default:
		page, err := api.ListEvents(ctx, client.EventQuery{Search: st.Search, PageParams: client.FirstPage})
		if err != nil {
			d.errMsg = client.ErrorMessage(err)
			return nil
		}
		d.all, d.total = page.Data, page.Total
	}
	return nil
}

func (d *dashboardView) categoryName(id int) string {
	for _, c := range d.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "#" + strconv.Itoa(id)
}

func (d *dashboardView) Render(w io.Writer) error {
	a := d.app
	st := a.Events.State()

	a.header(w, "Events")
	fmt.Fprintf(w, "Search: %q  Mode: %s\n", st.Search, st.ViewMode)
	if len(d.categories) > 0 {
		parts := make([]string, 0, len(d.categories))
		for _, c := range d.categories {
			parts = append(parts, fmt.Sprintf("%d %s", c.ID, c.Name))
		}
		fmt.Fprintf(w, "%s Categories: %s\n", a.icons.Glyph(IconCategory), strings.Join(parts, ", "))
	}

	var storeErr string
	if st.ErrorMessage != nil {
		storeErr = *st.ErrorMessage
	}

	switch st.ViewMode {
	case store.ViewMostViewed:
		fmt.Fprintln(w, "Most viewed")
		errorLine(w, storeErr)
		return a.eventTable(w, st.MostViewedEvents)
	case store.ViewCategory:
		id := d.categoryID
		if id == 0 {
			id = st.CategoryID
		}
		if id > 0 {
			fmt.Fprintf(w, "Category: %s\n", d.categoryName(id))
		}
		errorLine(w, storeErr)
		return a.eventTable(w, st.CategoryEvents)
	default:
		errorLine(w, d.errMsg)
		if err := a.eventTable(w, d.all); err != nil {
			return err
		}
		if d.total > len(d.all) {
			fmt.Fprintf(w, "Showing %d of %d\n", len(d.all), d.total)
		}
		return nil
	}
}
