package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/router"
	"github.com/eventboard/eventboard/store"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

const shellHelp = `Commands:
  go <path>                       open a route (see: routes)
  search [text]                   set the dashboard search
  mode <all|mostViewed|category>  set the dashboard view mode
  most-viewed                     show the most viewed events
  category <id>                   show the events of a category
  rsvp <event-id>                 RSVP to an event
  login <email> <password>        start a session
  logout                          end the session
  whoami                          show the current user
  new-category <name> [desc]      create a category
  rm-category <id>                delete a category
  rm-event <id>                   delete an event
  rm-user <id>                    delete a user
  routes                          list routes
  help                            show this help
  quit                            leave the shell
`

// Shell reads commands line by line and applies them to an App.
type Shell struct {
	app    *App
	out    io.Writer
	prompt string
}

// NewShell returns a shell writing its own messages to out.
func NewShell(a *App, out io.Writer) *Shell {
	return &Shell{app: a, out: out, prompt: "> "}
}

// Run executes commands from in until EOF, quit or ctx is done. Command
// failures are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(ctx, sc.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			log.Debug().Err(err).Str("line", sc.Text()).Msg("shell command failed")
			fmt.Fprintf(s.out, "error: %s\n", describe(err))
		}
	}
}

// describe turns API failures into the classifier's message.
func describe(err error) string {
	if _, ok := client.AsHTTPError(err); ok {
		return client.ErrorMessage(err)
	}
	return err.Error()
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	a := s.app

	switch cmd {
	case "help", "?":
		_, err := fmt.Fprint(s.out, shellHelp)
		return err
	case "quit", "exit":
		return ErrQuit
	case "go", "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: go <path>")
		}
		return a.Batch(ctx, func(ctx context.Context) error { return a.Navigate(ctx, args[0]) })
	case "search":
		q := strings.Join(args, " ")
		return a.Batch(ctx, func(context.Context) error {
			a.Events.SetSearch(q)
			return nil
		})
	case "mode":
		if len(args) != 1 {
			return fmt.Errorf("usage: mode <all|mostViewed|category>")
		}
		mode, err := store.ParseViewMode(args[0])
		if err != nil {
			return err
		}
		return a.Batch(ctx, func(context.Context) error { return a.Events.SetViewMode(mode) })
	case "most-viewed":
		return a.Batch(ctx, func(ctx context.Context) error {
			if err := a.Events.SetViewMode(store.ViewMostViewed); err != nil {
				return err
			}
			if a.Current().Route.Name != router.Dashboard {
				return a.Navigate(ctx, "/")
			}
			return nil
		})
	case "category":
		id, err := intArg(args, "category <id>")
		if err != nil {
			return err
		}
		return a.Batch(ctx, func(ctx context.Context) error {
			if err := a.Events.SetViewMode(store.ViewCategory); err != nil {
				return err
			}
			return a.Navigate(ctx, "/?category="+strconv.Itoa(id))
		})
	case "rsvp":
		id, err := intArg(args, "rsvp <event-id>")
		if err != nil {
			return err
		}
		if err := a.api.RSVP(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "RSVP sent for event %d\n", id)
		return s.reloadOn(ctx, router.Event)
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		return a.Batch(ctx, func(ctx context.Context) error {
			if err := a.Auth.Login(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Logged in as %s\n", args[0])
			return nil
		})
	case "logout":
		return a.Batch(ctx, func(ctx context.Context) error {
			a.Auth.Logout(ctx)
			return nil
		})
	case "whoami":
		return s.whoami()
	case "routes":
		return PrintRoutes(s.out, a.Router())
	case "new-category":
		if len(args) == 0 {
			return fmt.Errorf("usage: new-category <name> [description]")
		}
		cat, err := a.api.CreateCategory(ctx, client.CreateCategoryRequest{
			Name:        args[0],
			Description: strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Category created: %d - %s\n", cat.ID, cat.Name)
		return s.reloadOn(ctx, router.Categories, router.Dashboard)
	case "rm-category":
		id, err := intArg(args, "rm-category <id>")
		if err != nil {
			return err
		}
		if err := a.api.DeleteCategory(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Category %d deleted\n", id)
		return s.reloadOn(ctx, router.Categories, router.Dashboard)
	case "rm-event":
		id, err := intArg(args, "rm-event <id>")
		if err != nil {
			return err
		}
		if err := a.api.DeleteEvent(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Event %d deleted\n", id)
		return s.reloadOn(ctx, router.Events, router.Dashboard)
	case "rm-user":
		id, err := intArg(args, "rm-user <id>")
		if err != nil {
			return err
		}
		if err := a.api.DeleteUser(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "User %d deleted\n", id)
		return s.reloadOn(ctx, router.Users)
	default:
		return fmt.Errorf("unknown command %q (try: help)", cmd)
	}
}

func (s *Shell) whoami() error {
	u := s.app.Auth.User()
	if u == nil {
		_, err := fmt.Fprintln(s.out, "anonymous")
		return err
	}
	_, err := fmt.Fprintf(s.out, "%s <%s> %s\n", u.FullName(), u.Email, u.Type)
	return err
}

// reloadOn reloads the current view when it is one of the named routes.
func (s *Shell) reloadOn(ctx context.Context, names ...string) error {
	current := s.app.Current().Route.Name
	for _, n := range names {
		if n == current {
			return s.app.Reload(ctx)
		}
	}
	return nil
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// PrintRoutes writes the route table.
func PrintRoutes(w io.Writer, r *router.Router) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tFOR")
	for _, rt := range r.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rt.Name, rt.Path, rt.Audience)
	}
	return tw.Flush()
}
