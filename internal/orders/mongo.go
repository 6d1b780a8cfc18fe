package orders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

// MongoStore persists orders as documents in the orders collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) (*MongoStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &MongoStore{coll: db.Collection(ordersCollection)}, nil
}

func (s *MongoStore) InsertOrder(ctx context.Context, order Order) error {
	if _, err := s.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("inserting order document: %w", err)
	}
	return nil
}

func (s *MongoStore) GetOrderByID(ctx context.Context, id string) (Order, error) {
	var order Order
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("fetching order document: %w", err)
	}
	return order, nil
}

func (s *MongoStore) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

func (s *MongoStore) ListAllOrders(ctx context.Context) ([]Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoStore) list(ctx context.Context, filter bson.M) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer cur.Close(ctx)

	var out []Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return out, nil
}

func (s *MongoStore) SetOrderPaid(ctx context.Context, order Order) error {
	return s.set(ctx, order.ID, bson.M{
		"is_paid":        order.IsPaid,
		"paid_at":        order.PaidAt,
		"payment_result": order.PaymentResult,
		"updated_at":     order.UpdatedAt,
	})
}

func (s *MongoStore) SetOrderDelivered(ctx context.Context, order Order) error {
	return s.set(ctx, order.ID, bson.M{
		"is_delivered": order.IsDelivered,
		"delivered_at": order.DeliveredAt,
		"updated_at":   order.UpdatedAt,
	})
}

// set updates only the given fields, keeping the paid and delivered
// transitions from clobbering each other's flags via stale reads.
func (s *MongoStore) set(ctx context.Context, id string, fields bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("updating order document: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
