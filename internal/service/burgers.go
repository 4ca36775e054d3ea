package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/daburgger/daburgger/internal/apiclient"
	"github.com/daburgger/daburgger/internal/audit"
	"github.com/daburgger/daburgger/internal/burger"
	"github.com/daburgger/daburgger/internal/logging"
	"github.com/daburgger/daburgger/internal/session"
	"github.com/daburgger/daburgger/internal/source"
	"github.com/daburgger/daburgger/internal/transport"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotAdmin   = errors.New("admin access required")
)

type BurgerService struct {
	Source   source.Source
	Client   *apiclient.Client
	Sessions *session.Store
	Audit    *audit.Producer
}

func (s *BurgerService) List(ctx context.Context) ([]burger.Burger, error) {
	return s.Source.List(ctx)
}

// requireAdmin re-reads the store for every privileged action instead of
// caching the decision, so expiry between page load and click is caught
// before any network call.
func (s *BurgerService) requireAdmin(ctx context.Context) (*session.Session, error) {
	sess, err := s.Sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) || !sess.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return sess, nil
}

func (s *BurgerService) Add(ctx context.Context, req transport.CreateBurgerRequest) error {
	sess, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	payload, err := buildPayload(req)
	if err != nil {
		return err
	}

	if _, err := s.Client.Request(ctx, http.MethodPost, "/burgers", payload); err != nil {
		return err
	}

	s.publish(ctx, sess, map[string]any{
		"type":       "burger_created",
		"restaurant": payload.Restaurant,
		"burgerName": payload.BurgerName,
	})
	return nil
}

func (s *BurgerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", ErrValidation)
	}
	sess, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	if _, err := s.Client.Request(ctx, http.MethodDelete, "/burgers/"+url.PathEscape(id), nil); err != nil {
		return err
	}

	s.publish(ctx, sess, map[string]any{
		"type": "burger_deleted",
		"id":   id,
	})
	return nil
}

func buildPayload(req transport.CreateBurgerRequest) (*transport.BurgerPayload, error) {
	p := &transport.BurgerPayload{
		Restaurant: strings.TrimSpace(req.Restaurant),
		Location:   strings.TrimSpace(req.Location),
		BurgerName: strings.TrimSpace(req.BurgerName),
		BurgerType: strings.TrimSpace(req.BurgerType),
		Date:       strings.TrimSpace(req.Date),
		Instagram:  strings.TrimSpace(req.Instagram),
		Maps:       strings.TrimSpace(req.Maps),
	}

	rating, ratingErr := strconv.ParseFloat(strings.TrimSpace(req.Rating), 64)
	if ratingErr != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return nil, fmt.Errorf("%w: please fill required fields", ErrValidation)
	}
	p.Rating = rating

	for _, v := range []string{p.Restaurant, p.Location, p.BurgerName, p.BurgerType, p.Date, p.Instagram, p.Maps} {
		if v == "" {
			return nil, fmt.Errorf("%w: please fill required fields", ErrValidation)
		}
	}
	if p.Rating < 1 || p.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	switch strings.ToLower(p.BurgerType) {
	case burger.TypeNormal, burger.TypeSmash:
	default:
		return nil, fmt.Errorf("%w: burger type must be %q or %q", ErrValidation, burger.TypeNormal, burger.TypeSmash)
	}
	return p, nil
}

// publish is best effort; a broken audit stream never fails the action.
func (s *BurgerService) publish(ctx context.Context, sess *session.Session, event map[string]any) {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Audit.Publish(pctx, sess.Who(), event); err != nil {
		logging.FromContext(ctx).Warn("audit publish failed", "error", err)
	}
}
