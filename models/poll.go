package models

import "time"

// Poll is embedded in a tweet. Voting closes once the duration has elapsed;
// the deadline is derived from the owning tweet's createdAt, never stored.
type Poll struct {
	Title           string       `dynamodbav:"title" json:"title"`
	DurationMinutes int          `dynamodbav:"durationMinutes" json:"durationMinutes"`
	Closed          bool         `dynamodbav:"closed" json:"closed"`
	Options         []PollOption `dynamodbav:"options" json:"options"`
}

// PollOption holds one choice and the voters who picked it.
type PollOption struct {
	Text   string   `dynamodbav:"text" json:"text"`
	Votes  int      `dynamodbav:"votes" json:"votes"`
	Voters []string `dynamodbav:"voters,omitempty" json:"voters,omitempty"`
}

const (
	MinPollOptions = 2
	MaxPollOptions = 4
)

// ClosesAt returns the voting deadline for a poll created at the given time.
func (p *Poll) ClosesAt(createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(p.DurationMinutes) * time.Minute)
}

// IsExpired reports whether the poll's duration has elapsed at `now`.
func (p *Poll) IsExpired(createdAt, now time.Time) bool {
	return !now.Before(p.ClosesAt(createdAt))
}

// HasVoted reports whether voterID already appears in any option's voter set.
func (p *Poll) HasVoted(voterID string) bool {
	for _, opt := range p.Options {
		for _, v := range opt.Voters {
			if v == voterID {
				return true
			}
		}
	}
	return false
}
