// Package core wires the inference pipelines to their collaborators.
// SmartServe is the explicit, owned inference context: constructed
// once at startup and handed to every request, with no hidden
// module-level state.
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/smartserve/backend/internal/config"
	"github.com/smartserve/backend/internal/core/capability"
	"github.com/smartserve/backend/internal/core/detect"
	"github.com/smartserve/backend/internal/core/model"
	"github.com/smartserve/backend/internal/core/recommend"
	"github.com/smartserve/backend/internal/core/verify"
	"github.com/smartserve/backend/internal/embed"
	"github.com/smartserve/backend/internal/menu"
	"github.com/smartserve/backend/internal/store"
)

// ErrNoItems rejects order creation with an empty item list.
var ErrNoItems = errors.New("no items provided")

type SmartServe struct {
	Store    store.Store
	Menu     *menu.Loader
	Registry *capability.Registry

	Detector    *detect.Pipeline
	Recommender recommend.Strategy
	Vector      *recommend.VectorStrategy // nil when the rules strategy is active

	policy      verify.Policy
	sampleImage string
}

// NewSmartServe builds the inference context. Backend construction
// happens inside capability probes, so a missing model or unreachable
// embedding endpoint degrades tiers instead of failing startup.
func NewSmartServe(cfg *config.Config, st store.Store, menuLoader *menu.Loader, embedder embed.Embedder) (*SmartServe, error) {
	policy, err := verify.ParsePolicy(cfg.Verify.Policy)
	if err != nil {
		return nil, err
	}

	registry := capability.NewRegistry()
	timeout := cfg.TierTimeout()

	s := &SmartServe{
		Store:       st,
		Menu:        menuLoader,
		Registry:    registry,
		Detector:    detect.NewPipeline(cfg.Detection, cfg.Embedding.OrtLibrary, registry, timeout),
		policy:      policy,
		sampleImage: cfg.Detection.SampleImage,
	}

	switch strings.ToLower(cfg.Recommend.Strategy) {
	case "rules":
		s.Recommender = recommend.NewRulesStrategy(menuLoader.Items, menuLoader.Inventory, menuLoader.History, cfg.Recommend.TopK)
	case "", "vector":
		s.Vector = recommend.NewVectorStrategy(menuLoader.Items, embedder, registry, timeout, cfg.Recommend.TopK)
		s.Recommender = s.Vector
	default:
		return nil, fmt.Errorf("unsupported recommendation strategy: %s", cfg.Recommend.Strategy)
	}

	return s, nil
}

// PlaceOrder creates a ticket and hands it to the kitchen.
func (s *SmartServe) PlaceOrder(ctx context.Context, profile string, items []string) (*model.Ticket, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	ticket, err := s.Store.CreateTicket(ctx, profile, items)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SetTicketStatus(ctx, ticket.ID, model.StatusInKitchen); err != nil {
		return nil, err
	}
	ticket.Status = model.StatusInKitchen
	log.Printf("Order created ticket_id=%d items=%v", ticket.ID, items)
	return ticket, nil
}

// Recommend resolves the effective profile and ticket context, then
// delegates to the active ranking strategy.
func (s *SmartServe) Recommend(ctx context.Context, user, profile, timestamp string, ticketID int64) ([]model.Recommendation, error) {
	effective := profile
	if user != "" {
		if u, err := s.Store.GetUserByPhone(ctx, user); err == nil && u.Profile != "" {
			effective = u.Profile
		} else if err != nil && !errors.Is(err, store.ErrUserNotFound) {
			log.Printf("Profile lookup failed for user=%s: %v", user, err)
		}
	}

	var contextItems []string
	if ticketID != 0 {
		if ticket, err := s.Store.GetTicket(ctx, ticketID); err == nil {
			contextItems = ticket.Items
		}
	}

	start := time.Now()
	recs, err := s.Recommender.Recommend(ctx, recommend.Request{
		User:         user,
		Profile:      effective,
		Timestamp:    timestamp,
		ContextItems: contextItems,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Recommendations for profile=%s: %d items in %s", effective, len(recs), time.Since(start).Round(time.Millisecond))
	return recs, nil
}

// VerifyTicket runs detection against the ticket's expected items,
// persists the new status and the outcome record, and returns the
// outcome.
func (s *SmartServe) VerifyTicket(ctx context.Context, ticketID int64, imageRef, hint string) (*model.VerificationOutcome, error) {
	ticket, err := s.Store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if imageRef == "" {
		imageRef = s.sampleImage
	}
	detected := s.Detector.Detect(ctx, imageRef, hint)
	outcome := verify.Match(ticket, detected, s.policy)

	if err := s.Store.SetTicketStatus(ctx, ticketID, outcome.Status); err != nil {
		return nil, err
	}
	if err := s.Store.SaveVerification(ctx, outcome); err != nil {
		return nil, err
	}

	if outcome.Verified {
		log.Printf("Verification success for ticket %d (tier=%s)", ticketID, s.Detector.ServedBy())
	} else {
		log.Printf("Verification failed for ticket %d missing=%v extra=%v", ticketID, outcome.Missing, outcome.Extra)
	}
	return &outcome, nil
}

// KitchenStatus returns a ticket plus its last persisted verification
// outcome, if any.
func (s *SmartServe) KitchenStatus(ctx context.Context, ticketID int64) (*model.Ticket, *model.VerificationOutcome, error) {
	ticket, err := s.Store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	outcome, err := s.Store.GetVerification(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, outcome, nil
}

// RebuildIndex forces a fresh recommendation index snapshot. A no-op
// under the rules strategy.
func (s *SmartServe) RebuildIndex(ctx context.Context) {
	if s.Vector != nil {
		s.Vector.Rebuild(ctx)
	}
}
