package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/store"
)

// EventAPI is the part of the SDK the event tools call.
type EventAPI interface {
	store.EventsAPI
	GetEvent(ctx context.Context, eventID int) (*client.Event, error)
}

// EventHandler exposes the event listings. Every tool call loads into its
// own EventStore, so concurrent calls never observe each other's results.
type EventHandler struct {
	api EventAPI
}

// NewEventHandler creates a handler over the SDK.
func NewEventHandler(api EventAPI) *EventHandler {
	return &EventHandler{api: api}
}

// RegisterTools registers the event tools with the MCP server.
func (eh *EventHandler) RegisterTools(s *server.MCPServer) error {
	mostViewed := mcp.NewTool("most_viewed_events",
		mcp.WithDescription("List the most viewed events"),
	)
	byCategory := mcp.NewTool("events_by_category",
		mcp.WithDescription("List the first 50 events of a category"),
		mcp.WithNumber("category_id", mcp.Required(), mcp.Description("Category ID")),
	)
	getEvent := mcp.NewTool("get_event",
		mcp.WithDescription("Get one event with its full details"),
		mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event ID")),
	)
	s.AddTool(mostViewed, eh.handleMostViewed)
	s.AddTool(byCategory, eh.handleByCategory)
	s.AddTool(getEvent, eh.handleGetEvent)
	return nil
}

// eventLite is the per-event summary returned by the list tools.
type eventLite struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	EventDate time.Time `json:"eventDate"`
	Location  string    `json:"location"`
	Views     int       `json:"views"`
}

func summarize(events []client.Event) []eventLite {
	out := make([]eventLite, len(events))
	for i, ev := range events {
		out[i] = eventLite{ID: ev.ID, Name: ev.Name, EventDate: ev.EventDate, Location: ev.Location, Views: ev.Views}
	}
	return out
}

func (eh *EventHandler) handleMostViewed(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("most_viewed_events invoked")

	start := time.Now()
	events := store.NewEventStore(eh.api)
	events.LoadMostViewed(ctx)
	st := events.State()
	if st.ErrorMessage != nil {
		log.Error().Str("reason", *st.ErrorMessage).Dur("elapsed", time.Since(start)).Msg("most_viewed_events failed")
		return mcp.NewToolResultError(*st.ErrorMessage), nil
	}

	b, _ := json.Marshal(summarize(st.MostViewedEvents))
	return mcp.NewToolResultText(string(b)), nil
}

func (eh *EventHandler) handleByCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := intArgument(req, "category_id")
	if !ok {
		return mcp.NewToolResultError("category_id parameter is required"), nil
	}

	log.Debug().Int("category_id", id).Msg("events_by_category invoked")

	start := time.Now()
	events := store.NewEventStore(eh.api)
	events.LoadByCategory(ctx, id)
	st := events.State()
	if st.ErrorMessage != nil {
		log.Error().Str("reason", *st.ErrorMessage).Int("category_id", id).Dur("elapsed", time.Since(start)).Msg("events_by_category failed")
		return mcp.NewToolResultError(*st.ErrorMessage), nil
	}

	b, _ := json.Marshal(summarize(st.CategoryEvents))
	return mcp.NewToolResultText(string(b)), nil
}

func (eh *EventHandler) handleGetEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := intArgument(req, "event_id")
	if !ok {
		return mcp.NewToolResultError("event_id parameter is required"), nil
	}

	log.Debug().Int("event_id", id).Msg("get_event invoked")

	start := time.Now()
	ev, err := eh.api.GetEvent(ctx, id)
	if err != nil {
		log.Error().Err(err).Int("event_id", id).Dur("elapsed", time.Since(start)).Msg("get_event failed")
		return mcp.NewToolResultError(client.ErrorMessage(err)), nil
	}

	b, _ := json.Marshal(ev)
	return mcp.NewToolResultText(string(b)), nil
}

// intArgument reads a whole-number argument. JSON numbers arrive as float64.
func intArgument(req mcp.CallToolRequest, name string) (int, bool) {
	switch v := req.GetArguments()[name].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
