package store

import (
	"github.com/everhype/monthclose/pkg/domain"
)

// Store archives a run's fetched transactions for later audit or search.
type Store interface {
	Write([]*domain.Transaction) error
}
