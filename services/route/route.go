package route

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"packtravel/clients/maps"
	"packtravel/dates"
	"packtravel/services/user"
	"packtravel/set"
	"packtravel/utils"
)

type Service interface {
	// Create stores a new route under its composite id and registers it
	// with the Ride for its destination, creating the Ride on first use.
	// A route whose id already exists is silently skipped, and the Ride
	// is left untouched. Returns the ride id (the destination) either
	// way. The route write and the ride write are two independent
	// operations; there is no rollback between them.
	Create(ctx context.Context, username string, input Input) (string, error)

	// AttachUser toggles the user's membership on the route: join when
	// absent, leave when present. The user's own rides list grows by one
	// entry on every call regardless of direction. Returns the user's id,
	// or user.NotFound when no such user exists. A missing route leaves
	// only the user-side append in place.
	AttachUser(ctx context.Context, username, routeID string) (string, error)

	// ActiveRoutes resolves the given route ids, drops any whose date
	// has already passed, and inlines the creator for display. Ids that
	// resolve to no document, or whose creator is gone, are skipped.
	ActiveRoutes(ctx context.Context, routeIDs []string) ([]DisplayRoute, error)

	// SelectedRoute returns the id of the candidate route the user is
	// currently joined to, or "" when the user has joined none of them
	// or does not exist.
	SelectedRoute(ctx context.Context, username string, routes []DisplayRoute) string

	// FavoriteDestinations ranks destinations by accumulated joined-user
	// count across their routes, descending, truncated to the top 20.
	// Ties keep store iteration order; that order is not specified.
	FavoriteDestinations(ctx context.Context) ([]Favorite, error)

	// MyRides returns every route present in the user's rides list.
	MyRides(ctx context.Context, username string) ([]Route, error)

	// ByCreator returns every route the user created.
	ByCreator(ctx context.Context, creatorID string) ([]Route, error)

	// Delete removes a route document. The Ride keeps the dangling id;
	// readers skip ids that no longer resolve.
	Delete(ctx context.Context, routeID string) error
}

const (
	routesCollection = "routes"
	ridesCollection  = "rides"
)

const maxFavorites = 20

// Firestore rejects "in" filters with more than 30 comparison values.
const maxInValues = 30

type service struct {
	db    *firestore.Client
	users user.Service
	maps  maps.Service
}

var _ Service = (*service)(nil)

func NewService(db *firestore.Client, users user.Service, mapsService maps.Service) Service {
	return &service{
		db:    db,
		users: users,
		maps:  mapsService,
	}
}

var NotFound = errors.New("route not found")

// CompositeID derives the route's identity from its fields. The format
// is load-bearing: stored documents use it as their id, and the search
// index reads the date back out of it positionally.
func CompositeID(input Input) string {
	return strings.Join([]string{
		input.Purpose,
		input.StartPoint,
		input.Destination,
		input.Date,
		input.Hour,
		input.Minute,
		input.AmPm,
	}, "_")
}

// DateToken extracts the date embedded in a composite route id: the
// fourth underscore-separated field. Fields containing underscores
// shift the position and are not supported.
func DateToken(routeID string) (string, error) {
	parts := strings.Split(routeID, "_")
	if len(parts) < 4 {
		return "", fmt.Errorf("malformed route id %q", routeID)
	}
	return parts[3], nil
}

// IsActive reports whether the route's embedded date has not yet
// passed. The date is read from the id, not the document, so it works
// on bare ids from a Ride's route_id list.
func IsActive(routeID string) (bool, error) {
	token, err := DateToken(routeID)
	if err != nil {
		return false, err
	}
	passed, err := dates.HasPassed(token)
	if err != nil {
		return false, err
	}
	return !passed, nil
}

func (s *service) Create(ctx context.Context, username string, input Input) (string, error) {
	routeID := CompositeID(input)
	rideID := input.Destination

	r := Route{
		ID:          routeID,
		Purpose:     input.Purpose,
		StartPoint:  input.StartPoint,
		Destination: input.Destination,
		Type:        input.Type,
		Date:        input.Date,
		Hour:        input.Hour,
		Minute:      input.Minute,
		AmPm:        input.AmPm,
		Details:     input.Details,
		Users:       []string{},
	}

	// The creator is attached before the route document exists, so only
	// the user-side append happens here; the creator joins the route's
	// users list through a later AttachUser call.
	creatorID, err := s.AttachUser(ctx, username, routeID)
	if err != nil {
		return "", err
	}
	r.Creator = creatorID

	if input.StartLat != "" {
		r.StartLat = input.StartLat
		r.StartLong = input.StartLong
	}
	if input.DestLat != "" {
		r.DestLat = input.DestLat
		r.DestLong = input.DestLong
	}
	if input.StartLat != "" && input.DestLat != "" {
		details := s.maps.GetRouteDetails(ctx, input.StartLat, input.StartLong, input.DestLat, input.DestLong)
		r.Distance = details.Distance
		r.Fuel = details.Fuel
	}

	existing, err := s.get(ctx, routeID)
	if err != nil && !errors.Is(err, NotFound) {
		return "", err
	}
	if existing != nil {
		// Identical composite key: keep the stored route and proceed as
		// if the create succeeded.
		log.Info().Str("route", routeID).Msg("route already exists, skipping insert")
		return rideID, nil
	}

	if _, err := s.db.Collection(routesCollection).Doc(routeID).Set(ctx, r); err != nil {
		return "", fmt.Errorf("failed to store route: %w", err)
	}
	log.Info().Str("route", routeID).Str("creator", username).Msg("route added")

	if err := s.registerWithRide(ctx, rideID, routeID); err != nil {
		return "", err
	}
	return rideID, nil
}

// rideDoc is the slice of the Ride document this service touches.
type rideDoc struct {
	ID          string   `firestore:"id"`
	Destination string   `firestore:"destination"`
	RouteIDs    []string `firestore:"route_id"`
}

func (s *service) registerWithRide(ctx context.Context, rideID, routeID string) error {
	iter := s.db.Collection(ridesCollection).
		Where("id", "==", rideID).
		Limit(1).
		Documents(ctx)
	var existing *rideDoc
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return err
		}
		existing = &rideDoc{}
		if err := doc.DataTo(existing); err != nil {
			return err
		}
	}

	if existing == nil {
		ride := rideDoc{
			ID:          rideID,
			Destination: rideID,
			RouteIDs:    []string{routeID},
		}
		if _, err := s.db.Collection(ridesCollection).Doc(rideID).Set(ctx, ride); err != nil {
			return fmt.Errorf("failed to store ride: %w", err)
		}
		log.Info().Str("ride", rideID).Msg("ride added")
		return nil
	}

	routeIDs := append(existing.RouteIDs, routeID)
	_, err := s.db.Collection(ridesCollection).Doc(rideID).Set(ctx, map[string]any{
		"route_id": routeIDs,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update ride: %w", err)
	}
	log.Info().Str("ride", rideID).Msg("ride updated")
	return nil
}

func (s *service) AttachUser(ctx context.Context, username, routeID string) (string, error) {
	userID, err := s.users.AppendRide(ctx, username, routeID)
	if err != nil {
		return "", err
	}

	r, err := s.get(ctx, routeID)
	if errors.Is(err, NotFound) {
		return userID, nil
	}
	if err != nil {
		return "", err
	}

	users, removed := toggle(r.Users, userID)
	_, err = s.db.Collection(routesCollection).Doc(routeID).Set(ctx, map[string]any{
		"users": users,
	}, firestore.MergeAll)
	if err != nil {
		return "", fmt.Errorf("failed to update route users: %w", err)
	}
	if removed {
		log.Info().Str("route", routeID).Str("user", userID).Msg("user left route")
	} else {
		log.Info().Str("route", routeID).Str("user", userID).Msg("user joined route")
	}
	return userID, nil
}

// toggle flips userID's membership in users, preserving the order of
// the remaining entries. The second return reports whether the user was
// removed. Computed read-then-write by the caller with no locking, so
// two concurrent toggles for the same pair can race; accepted.
func toggle(users []string, userID string) ([]string, bool) {
	members := set.FromSlice(users)
	if members.Contains(userID) {
		remaining := make([]string, 0, len(users))
		for _, u := range users {
			if u != userID {
				remaining = append(remaining, u)
			}
		}
		return remaining, true
	}
	return append(users, userID), false
}

func (s *service) ActiveRoutes(ctx context.Context, routeIDs []string) ([]DisplayRoute, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}
	routes := make([]Route, 0, len(routeIDs))
	for _, batch := range chunk(routeIDs, maxInValues) {
		docs, err := s.db.Collection(routesCollection).
			Where("id", "in", batch).
			Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
		batchRoutes, err := utils.GetAllToStructs[Route](docs)
		if err != nil {
			return nil, err
		}
		routes = append(routes, batchRoutes...)
	}

	display := make([]DisplayRoute, 0, len(routes))
	for _, r := range routes {
		active, err := IsActive(r.ID)
		if err != nil {
			return nil, err
		}
		if !active {
			continue
		}
		creator, err := s.users.GetByID(ctx, r.Creator)
		if errors.Is(err, user.NotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		r.Distance = math.Round(r.Distance*10) / 10
		display = append(display, DisplayRoute{Route: r, Creator: *creator})
	}
	return display, nil
}

// chunk splits ids into batches of at most size, preserving order.
func chunk(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		batches = append(batches, ids)
	}
	return batches
}

func (s *service) SelectedRoute(ctx context.Context, username string, routes []DisplayRoute) string {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return ""
	}
	return selectJoined(u.ID, routes)
}

// selectJoined resolves the selection from the route-side toggle state
// rather than the user's ever-growing rides list, so an un-joined route
// no longer reads as selected.
func selectJoined(userID string, routes []DisplayRoute) string {
	for _, r := range routes {
		if set.FromSlice(r.Route.Users).Contains(userID) {
			return r.Route.ID
		}
	}
	return ""
}

func (s *service) FavoriteDestinations(ctx context.Context) ([]Favorite, error) {
	docs, err := s.db.Collection(routesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	routes, err := utils.GetAllToStructs[Route](docs)
	if err != nil {
		return nil, err
	}
	return rankFavorites(routes), nil
}

func rankFavorites(routes []Route) []Favorite {
	buckets := make(map[string]*Favorite)
	order := make([]string, 0)
	for _, r := range routes {
		if len(r.Users) == 0 {
			continue
		}
		slug := url.PathEscape(r.Destination)
		if bucket, ok := buckets[slug]; ok {
			bucket.UserCount += len(r.Users)
			continue
		}
		buckets[slug] = &Favorite{
			Destination: r.Destination,
			Slug:        slug,
			UserCount:   len(r.Users),
		}
		order = append(order, slug)
	}

	ranked := make([]Favorite, 0, len(order))
	for _, slug := range order {
		ranked = append(ranked, *buckets[slug])
	}
	// Stable: ties keep first-seen order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UserCount > ranked[j].UserCount
	})
	if len(ranked) > maxFavorites {
		ranked = ranked[:maxFavorites]
	}
	return ranked
}

func (s *service) MyRides(ctx context.Context, username string) ([]Route, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(u.Rides) == 0 {
		return nil, nil
	}
	joined := set.FromSlice(u.Rides)

	docs, err := s.db.Collection(routesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	routes, err := utils.GetAllToStructs[Route](docs)
	if err != nil {
		return nil, err
	}
	mine := make([]Route, 0)
	for _, r := range routes {
		if joined.Contains(r.ID) {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

func (s *service) ByCreator(ctx context.Context, creatorID string) ([]Route, error) {
	docs, err := s.db.Collection(routesCollection).
		Where("creator", "==", creatorID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return utils.GetAllToStructs[Route](docs)
}

func (s *service) Delete(ctx context.Context, routeID string) error {
	if _, err := s.db.Collection(routesCollection).Doc(routeID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	log.Info().Str("route", routeID).Msg("route deleted")
	return nil
}

func (s *service) get(ctx context.Context, routeID string) (*Route, error) {
	iter := s.db.Collection(routesCollection).
		Where("id", "==", routeID).
		Limit(1).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		r := &Route{}
		if err := doc.DataTo(r); err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, NotFound
}
