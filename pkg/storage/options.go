package storage

import "github.com/sirupsen/logrus"

type StoreOption func(*Store)

// WithPoolSize sets the number of pooled connections (default: 4)
func WithPoolSize(n int) StoreOption {
	return func(store *Store) {
		if n > 0 {
			store.poolSize = n
		}
	}
}

func WithLogger(logger *logrus.Logger) StoreOption {
	return func(store *Store) {
		store.logger = logger.WithField("component", "storage")
	}
}
