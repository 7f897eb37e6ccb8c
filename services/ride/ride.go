package ride

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"packtravel/services/route"
	"packtravel/utils"
)

// Ride groups every route heading to one destination. The destination
// string doubles as the document id, so two different trips to the same
// destination share a Ride.
type Ride struct {
	ID          string   `json:"id" firestore:"id"`
	Destination string   `json:"destination" firestore:"destination"`
	RouteIDs    []string `json:"route_id" firestore:"route_id"`
}

// RideWithCount annotates a ride with how many of its routes are still
// upcoming.
type RideWithCount struct {
	Ride  Ride `json:"ride"`
	Count int  `json:"count"`
}

type Service interface {
	Get(ctx context.Context, id string) (*Ride, error)
	// SearchIndex lists every ride with a count of its not-yet-expired
	// routes. The check reads the date out of each route id rather than
	// fetching the route documents.
	SearchIndex(ctx context.Context) ([]RideWithCount, error)
}

const collection = "rides"

type service struct {
	db *firestore.Client
}

var _ Service = (*service)(nil)

func NewService(db *firestore.Client) Service {
	return &service{
		db: db,
	}
}

var NotFound = errors.New("ride not found")

func (s *service) Get(ctx context.Context, id string) (*Ride, error) {
	iter := s.db.Collection(collection).
		Where("id", "==", id).
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
		r := &Ride{}
		if err := doc.DataTo(r); err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, NotFound
}

func (s *service) SearchIndex(ctx context.Context) ([]RideWithCount, error) {
	docs, err := s.db.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	rides, err := utils.GetAllToStructs[Ride](docs)
	if err != nil {
		return nil, err
	}

	index := make([]RideWithCount, 0, len(rides))
	for _, r := range rides {
		count, err := countActive(r.RouteIDs)
		if err != nil {
			return nil, err
		}
		index = append(index, RideWithCount{Ride: r, Count: count})
	}
	return index, nil
}

func countActive(routeIDs []string) (int, error) {
	count := 0
	for _, id := range routeIDs {
		active, err := route.IsActive(id)
		if err != nil {
			return 0, err
		}
		if active {
			count++
		}
	}
	return count, nil
}
