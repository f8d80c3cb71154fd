package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/eventboard/eventboard/client"
)

// eventView shows one event with its comments.
type eventView struct {
	app *App
	id  int

	event    *client.Event
	comments []client.Comment
	errMsg   string
}

func (v *eventView) Load(ctx context.Context) error {
	v.errMsg = ""
	ev, err := v.app.api.GetEvent(ctx, v.id)
	if err != nil {
		v.event = nil
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.event = ev

	comments, err := v.app.api.ListComments(ctx, v.id)
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.comments = comments
	return nil
}

func (v *eventView) Render(w io.Writer) error {
	a := v.app
	a.header(w, "Event")
	errorLine(w, v.errMsg)
	ev := v.event
	if ev == nil {
		return nil
	}

	fmt.Fprintf(w, "%s\n", ev.Name)
	fmt.Fprintf(w, "%s %s at %s\n", a.icons.Glyph(IconCalendar), formatDate(ev.EventDate), ev.Location)
	if ev.Category != nil {
		fmt.Fprintf(w, "%s %s\n", a.icons.Glyph(IconCategory), ev.Category.Name)
	}
	if len(ev.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", tagNames(ev.Tags))
	}
	fmt.Fprintf(w, "%s %d views  by %s\n", a.icons.Glyph(IconViews), ev.Views, ev.Author.FullName())
	if ev.MaxParticipants != nil {
		fmt.Fprintf(w, "Max participants: %d\n", *ev.MaxParticipants)
	}
	if ev.Description != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(ev.Description))
	}

	fmt.Fprintf(w, "\nComments (%d)\n", len(v.comments))
	for _, c := range v.comments {
		fmt.Fprintf(w, "  %s%d %s%d  %s, %s: %s\n",
			a.icons.Glyph(IconThumbsUp), c.LikeCount,
			a.icons.Glyph(IconThumbsDown), c.DislikeCount,
			c.AuthorName, formatDate(c.CreatedAt), c.Content)
	}
	if a.Auth.IsLoggedIn() {
		fmt.Fprintf(w, "\nRSVP with: rsvp %d\n", ev.ID)
	}
	return nil
}

// tagEventsView lists the first page of events carrying a tag.
type tagEventsView struct {
	app *App
	id  int

	events []client.Event
	errMsg string
}

func (v *tagEventsView) Load(ctx context.Context) error {
	v.errMsg = ""
	events, err := v.app.api.EventsByTag(ctx, v.id, client.FirstPage)
	if err != nil {
		v.errMsg = client.ErrorMessage(err)
		return nil
	}
	v.events = events
	return nil
}

func (v *tagEventsView) Render(w io.Writer) error {
	v.app.header(w, fmt.Sprintf("Events tagged #%d", v.id))
	errorLine(w, v.errMsg)
	return v.app.eventTable(w, v.events)
}

// loginView points at the shell's login command.
type loginView struct {
	app *App
}

func (v *loginView) Load(context.Context) error { return nil }

func (v *loginView) Render(w io.Writer) error {
	v.app.header(w, "Login")
	if u := v.app.Auth.User(); u != nil {
		_, err := fmt.Fprintf(w, "Logged in as %s.\n", u.Email)
		return err
	}
	_, err := fmt.Fprintln(w, "Log in with: login <email> <password>")
	return err
}
