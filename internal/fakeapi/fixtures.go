package fakeapi

import (
	"time"

	"github.com/eventboard/eventboard/client"
)

// Fixture credentials.
const (
	AdminEmail      = "ada@example.com"
	AdminPassword   = "admin-pass"
	CreatorEmail    = "grace@example.com"
	CreatorPassword = "creator-pass"
)

func intPtr(v int) *int { return &v }

func seedUsers() []client.User {
	return []client.User{
		{ID: 1, Email: AdminEmail, FirstName: "Ada", LastName: "Lovelace", Type: client.UserTypeAdmin, Status: "active"},
		{ID: 2, Email: CreatorEmail, FirstName: "Grace", LastName: "Hopper", Type: client.UserTypeEventCreator, Status: "active"},
	}
}

func seedPasswords() map[string]string {
	return map[string]string{
		AdminEmail:   AdminPassword,
		CreatorEmail: CreatorPassword,
	}
}

func seedCategories() []client.Category {
	return []client.Category{
		{ID: 1, Name: "Concerts", Description: "Live music"},
		{ID: 2, Name: "Meetups", Description: "Community gatherings"},
		{ID: 3, Name: "Workshops"},
	}
}

func seedEvents(users []client.User, cats []client.Category) []client.Event {
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	music := client.Tag{ID: 1, Name: "music"}
	golang := client.Tag{ID: 2, Name: "go"}
	outdoor := client.Tag{ID: 3, Name: "outdoor"}

	return []client.Event{
		{
			ID: 1, Name: "Jazz in the Park", Description: "An evening of open-air jazz.",
			CreatedAt: base, EventDate: base.Add(30 * 24 * time.Hour), Location: "Central Park",
			Views: 340, Author: users[1], Tags: []client.Tag{music, outdoor}, Category: &cats[0],
			MaxParticipants: intPtr(200),
		},
		{
			ID: 2, Name: "Go Meetup", Description: "Talks about concurrency patterns.",
			CreatedAt: base.Add(time.Hour), EventDate: base.Add(12 * 24 * time.Hour), Location: "Tech Hub",
			Views: 125, Author: users[1], Tags: []client.Tag{golang}, Category: &cats[1],
		},
		{
			ID: 3, Name: "Rock Festival", Description: "Three stages, one weekend.",
			CreatedAt: base.Add(2 * time.Hour), EventDate: base.Add(60 * 24 * time.Hour), Location: "Riverside",
			Views: 890, Author: users[0], Tags: []client.Tag{music, outdoor}, Category: &cats[0],
			MaxParticipants: intPtr(5000),
		},
		{
			ID: 4, Name: "Intro to Pottery", Description: "Hands-on beginner workshop.",
			CreatedAt: base.Add(3 * time.Hour), EventDate: base.Add(5 * 24 * time.Hour), Location: "Studio 4",
			Views: 42, Author: users[1], Tags: []client.Tag{}, Category: &cats[2],
			MaxParticipants: intPtr(12),
		},
	}
}

func seedComments() map[int][]client.Comment {
	base := time.Date(2025, time.March, 2, 12, 0, 0, 0, time.UTC)
	return map[int][]client.Comment{
		1: {
			{ID: 1, AuthorName: "Linus", Content: "Bring a blanket!", CreatedAt: base, LikeCount: 4},
			{ID: 2, AuthorName: "Barbara", Content: "Is there parking?", CreatedAt: base.Add(time.Hour), LikeCount: 1, DislikeCount: 1},
		},
	}
}
