package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

const collectionMailDeliveries = "mail_deliveries"

// deliveryRetention bounds how long audit documents are kept.
const deliveryRetention = 90 * 24 * time.Hour

type MailDeliveryRepository struct {
	col *mongo.Collection
}

func NewMailDeliveryRepository(db *mongo.Database) *MailDeliveryRepository {
	return &MailDeliveryRepository{col: db.Collection(collectionMailDeliveries)}
}

type mailDeliveryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Template  string             `bson:"template"`
	Recipient string             `bson:"recipient"`
	Status    string             `bson:"status"`
	Error     string             `bson:"error,omitempty"`
	SentAt    time.Time          `bson:"sent_at"`
}

// Record inserts one audit document per send attempt.
func (r *MailDeliveryRepository) Record(ctx context.Context, d *domain.MailDelivery) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mailDeliveryDoc{
		Template:  d.Template,
		Recipient: d.Recipient,
		Status:    d.Status,
		Error:     d.Error,
		SentAt:    d.SentAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert mail delivery: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index and the retention TTL index.
func (r *MailDeliveryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "sent_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "sent_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(deliveryRetention.Seconds())),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
