package models

import (
	"testing"
	"time"
)

func TestPollClosesByDuration(t *testing.T) {
	poll := &Poll{
		Title:           "best language?",
		DurationMinutes: 30,
		Options:         []PollOption{{Text: "go"}, {Text: "rust"}},
	}
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if poll.IsExpired(createdAt, createdAt.Add(29*time.Minute)) {
		t.Fatal("poll must stay open before the duration elapses")
	}
	if !poll.IsExpired(createdAt, createdAt.Add(30*time.Minute)) {
		t.Fatal("poll must close exactly at the deadline")
	}
	if !poll.IsExpired(createdAt, createdAt.Add(31*time.Minute)) {
		t.Fatal("poll must stay closed after the deadline")
	}

	want := createdAt.Add(30 * time.Minute)
	if !poll.ClosesAt(createdAt).Equal(want) {
		t.Fatalf("ClosesAt = %v, want %v", poll.ClosesAt(createdAt), want)
	}
}

func TestPollVotingDoesNotCloseForVoter(t *testing.T) {
	// A vote records the voter but the poll stays open until the deadline.
	poll := &Poll{
		DurationMinutes: 60,
		Options: []PollOption{
			{Text: "go", Votes: 1, Voters: []string{"alice"}},
			{Text: "rust"},
		},
	}
	createdAt := time.Now().Add(-time.Minute)

	if poll.IsExpired(createdAt, time.Now()) {
		t.Fatal("a vote must not close the poll")
	}
	if !poll.HasVoted("alice") {
		t.Fatal("alice voted and must be rejected on a second vote")
	}
	if poll.HasVoted("bob") {
		t.Fatal("bob has not voted yet")
	}
}
