// Package feed turns raw request lists into the displayable, tab-filtered
// marketplace feed. Everything here is pure; no I/O.
package feed

import (
	"github.com/aun009/resourcify/internal/domain"
	"github.com/aun009/resourcify/internal/geo"
)

const (
	TabTools    = "Tools"
	TabSkills   = "Skills"
	TabActivity = "Activity"
)

// Card is one feed entry, annotated for display.
type Card struct {
	Request  domain.Request
	Distance string
	Posted   string
}

// Build annotates requests with viewer distance and post time. A nil
// location yields "Unknown" distances across the board.
func Build(requests []domain.Request, me *geo.Point) []Card {
	cards := make([]Card, 0, len(requests))
	for _, req := range requests {
		posted := "Just now"
		if !req.CreatedAt.IsZero() {
			posted = req.CreatedAt.Clock()
		}
		cards = append(cards, Card{
			Request:  req,
			Distance: geo.FormatDistance(me, req.Latitude, req.Longitude),
			Posted:   posted,
		})
	}
	return cards
}

// ForTab selects what a tab shows: Tools and Skills filter the public feed
// by record type, Activity is the user's own list as the backend returned
// it. Server order is preserved; there is no client-side sort.
func ForTab(tab string, public, mine []Card) []Card {
	if tab == TabActivity {
		return mine
	}
	out := make([]Card, 0, len(public))
	for _, card := range public {
		if card.Request.Type == tab {
			out = append(out, card)
		}
	}
	return out
}
