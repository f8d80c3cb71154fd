package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/eventboard/eventboard/client"
)

// ------------------------------
// Auth
// ------------------------------

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authorizeLocked(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userByEmailLocked(req.Email)
	if !ok || s.passwords[u.Email] != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.newSessionLocked(u.ID),
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ck, err := r.Cookie(SessionCookie); err == nil {
		delete(s.sessions, ck.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------
// Events
// ------------------------------

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	size, offset := pageWindow(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []client.Event{}
	for _, ev := range s.events {
		if search == "" ||
			strings.Contains(strings.ToLower(ev.Name), search) ||
			strings.Contains(strings.ToLower(ev.Description), search) {
			matched = append(matched, ev)
		}
	}
	writeJSON(w, http.StatusOK, client.EventPage{Data: paginate(matched, size, offset), Total: len(matched)})
}

func (s *Server) handleMostViewed(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sorted := make([]client.Event, len(s.events))
	copy(sorted, s.events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })
	if len(sorted) > mostViewedLimit {
		sorted = sorted[:mostViewedLimit]
	}
	writeJSON(w, http.StatusOK, sorted)
}

func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	size, offset := pageWindow(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []client.Event{}
	for _, ev := range s.events {
		if ref, ok := ev.CategoryRef(); ok && ref == id {
			matched = append(matched, ev)
		}
	}
	writeJSON(w, http.StatusOK, client.EventPage{Data: paginate(matched, size, offset), Total: len(matched)})
}

func (s *Server) handleByTag(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	size, offset := pageWindow(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []client.Event{}
	for _, ev := range s.events {
		for _, tag := range ev.Tags {
			if tag.ID == id {
				matched = append(matched, ev)
				break
			}
		}
	}
	writeJSON(w, http.StatusOK, client.EventPage{Data: paginate(matched, size, offset), Total: len(matched)})
}

func (s *Server) eventIndexLocked(id int) int {
	for i, ev := range s.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.eventIndexLocked(pathID(r))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	s.events[i].Views++
	writeJSON(w, http.StatusOK, s.events[i])
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authorizeLocked(w, r, client.UserTypeAdmin, client.UserTypeEventCreator); !ok {
		return
	}
	id := pathID(r)
	i := s.eventIndexLocked(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	delete(s.comments, id)
	delete(s.rsvps, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRSVP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.authorizeLocked(w, r)
	if !ok {
		return
	}
	id := pathID(r)
	i := s.eventIndexLocked(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	replies := s.rsvps[id]
	if replies == nil {
		replies = map[int]bool{}
		s.rsvps[id] = replies
	}
	if limit := s.events[i].MaxParticipants; limit != nil && !replies[u.ID] && len(replies) >= *limit {
		writeError(w, http.StatusConflict, "Event is full")
		return
	}
	replies[u.ID] = true
	writeJSON(w, http.StatusOK, map[string]any{"eventId": id, "status": "going"})
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if s.eventIndexLocked(id) < 0 {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	comments := s.comments[id]
	if comments == nil {
		comments = []client.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// ------------------------------
// Categories
// ------------------------------

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req client.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authorizeLocked(w, r, client.UserTypeAdmin, client.UserTypeEventCreator); !ok {
		return
	}
	if name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			writeError(w, http.StatusConflict, "Category already exists")
			return
		}
	}
	cat := client.Category{ID: s.nextCatID, Name: name, Description: req.Description}
	s.nextCatID++
	s.categories = append(s.categories, cat)
	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authorizeLocked(w, r, client.UserTypeAdmin, client.UserTypeEventCreator); !ok {
		return
	}
	id := pathID(r)
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Category not found")
}

// ------------------------------
// Users
// ------------------------------

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authorizeLocked(w, r, client.UserTypeAdmin); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.users)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	me, ok := s.authorizeLocked(w, r, client.UserTypeAdmin)
	if !ok {
		return
	}
	id := pathID(r)
	if id == me.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete the current user")
		return
	}
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			for token, uid := range s.sessions {
				if uid == id {
					delete(s.sessions, token)
				}
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}
