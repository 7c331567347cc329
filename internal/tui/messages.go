package tui

import "tattletale/internal/domain"

// playerFetchedMsg is sent when one slot's lookup finishes.
type playerFetchedMsg struct {
	index  int
	record *domain.PlayerRecord
	err    error
}
