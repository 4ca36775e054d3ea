// Package source abstracts where the burger list comes from: the live API
// or the legacy static JSON file.
package source

import (
	"context"
	"net/http"

	"github.com/daburgger/daburgger/internal/apiclient"
	"github.com/daburgger/daburgger/internal/burger"
)

type Source interface {
	List(ctx context.Context) ([]burger.Burger, error)
}

// APISource fetches GET /burgers and normalizes whatever shape comes back.
type APISource struct {
	Client *apiclient.Client
}

func (s *APISource) List(ctx context.Context) ([]burger.Burger, error) {
	raw, err := s.Client.Request(ctx, http.MethodGet, "/burgers", nil)
	if err != nil {
		return nil, err
	}
	return burger.Normalize(raw), nil
}
