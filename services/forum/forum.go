package forum

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"packtravel/services/route"
	"packtravel/set"
	"packtravel/utils"
)

// Topic is a discussion thread scoped to a ride destination. RideID is
// the destination string, the same key the rides collection uses.
type Topic struct {
	ID        string    `json:"id" firestore:"id"`
	RideID    string    `json:"ride_id" firestore:"ride_id"`
	Title     string    `json:"title" firestore:"title"`
	Content   string    `json:"content" firestore:"content"`
	Creator   string    `json:"creator" firestore:"creator"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}

type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	TopicID   string    `json:"topic_id" firestore:"topic_id"`
	Content   string    `json:"content" firestore:"content"`
	Creator   string    `json:"creator" firestore:"creator"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}

type TopicInput struct {
	RideID  string
	Title   string
	Content string
	Creator string
}

// RideTopics pairs one destination's representative route with its
// discussion topics.
type RideTopics struct {
	Ride   route.Route `json:"ride"`
	Topics []Topic     `json:"topics"`
}

type Service interface {
	// RidesWithTopics lists one entry per distinct destination, each
	// with the topics discussing it.
	RidesWithTopics(ctx context.Context) ([]RideTopics, error)
	CreateTopic(ctx context.Context, input TopicInput) (*Topic, error)
	Topics(ctx context.Context, rideID string) ([]Topic, error)
	// Topic returns one topic with its comments.
	Topic(ctx context.Context, topicID string) (*Topic, []Comment, error)
	AddComment(ctx context.Context, topicID, creator, content string) (*Comment, error)
}

const (
	topicsCollection   = "topics"
	commentsCollection = "comments"
	routesCollection   = "routes"
)

type service struct {
	db *firestore.Client
}

var _ Service = (*service)(nil)

func NewService(db *firestore.Client) Service {
	return &service{
		db: db,
	}
}

var (
	NotFound         = errors.New("topic not found")
	ErrMissingFields = errors.New("all fields are required")
)

func (s *service) RidesWithTopics(ctx context.Context) ([]RideTopics, error) {
	docs, err := s.db.Collection(routesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	routes, err := utils.GetAllToStructs[route.Route](docs)
	if err != nil {
		return nil, err
	}

	visited := set.New[string]()
	result := make([]RideTopics, 0)
	for _, r := range routes {
		if visited.Contains(r.Destination) {
			continue
		}
		visited.Add(r.Destination)
		topics, err := s.Topics(ctx, r.Destination)
		if err != nil {
			return nil, err
		}
		result = append(result, RideTopics{Ride: r, Topics: topics})
	}
	return result, nil
}

func (s *service) CreateTopic(ctx context.Context, input TopicInput) (*Topic, error) {
	if input.RideID == "" || input.Title == "" || input.Content == "" || input.Creator == "" {
		return nil, ErrMissingFields
	}
	topic := &Topic{
		RideID:    input.RideID,
		Title:     input.Title,
		Content:   input.Content,
		Creator:   input.Creator,
		CreatedAt: time.Now(),
	}
	ref := s.db.Collection(topicsCollection).NewDoc()
	topic.ID = ref.ID
	if _, err := ref.Set(ctx, topic); err != nil {
		return nil, err
	}
	log.Info().Str("topic", topic.ID).Str("ride", topic.RideID).Msg("topic created")
	return topic, nil
}

func (s *service) Topics(ctx context.Context, rideID string) ([]Topic, error) {
	docs, err := s.db.Collection(topicsCollection).
		Where("ride_id", "==", rideID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return utils.GetAllToStructs[Topic](docs)
}

func (s *service) Topic(ctx context.Context, topicID string) (*Topic, []Comment, error) {
	var topic *Topic
	iter := s.db.Collection(topicsCollection).
		Where("id", "==", topicID).
		Limit(1).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		topic = &Topic{}
		if err := doc.DataTo(topic); err != nil {
			return nil, nil, err
		}
	}
	if topic == nil {
		return nil, nil, NotFound
	}

	docs, err := s.db.Collection(commentsCollection).
		Where("topic_id", "==", topicID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, nil, err
	}
	comments, err := utils.GetAllToStructs[Comment](docs)
	if err != nil {
		return nil, nil, err
	}
	return topic, comments, nil
}

func (s *service) AddComment(ctx context.Context, topicID, creator, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrMissingFields
	}
	comment := &Comment{
		TopicID:   topicID,
		Content:   content,
		Creator:   creator,
		CreatedAt: time.Now(),
	}
	ref := s.db.Collection(commentsCollection).NewDoc()
	comment.ID = ref.ID
	if _, err := ref.Set(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
