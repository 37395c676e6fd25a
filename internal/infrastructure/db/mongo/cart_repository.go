package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/summercamp/camp-api/internal/core/domain"
)

const cartsCollection = "carts"

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(cartsCollection)}
}

type mongoCartItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ClassID        string             `bson:"classId"`
	Email          string             `bson:"email"`
	Name           string             `bson:"name"`
	Image          string             `bson:"image,omitempty"`
	Price          float64            `bson:"price"`
	InstructorName string             `bson:"instructorName,omitempty"`
}

func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	var docs []mongoCartItem
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	out := make([]domain.CartItem, len(docs))
	for i, d := range docs {
		out[i] = domain.CartItem{
			ID:             hexID(d.ID),
			ClassID:        d.ClassID,
			Email:          d.Email,
			Name:           d.Name,
			Image:          d.Image,
			Price:          d.Price,
			InstructorName: d.InstructorName,
		}
	}
	return out, nil
}

func (r *CartRepository) Add(ctx context.Context, item *domain.CartItem) (domain.InsertResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoCartItem{
		ClassID:        item.ClassID,
		Email:          item.Email,
		Name:           item.Name,
		Image:          item.Image,
		Price:          item.Price,
		InstructorName: item.InstructorName,
	})
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("insert cart item: %w", err)
	}
	return insertResult(res), nil
}

// Delete removes a single item; the owner filter makes foreign ids a no-op.
func (r *CartRepository) Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "email": owner})
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete cart item: %w", err)
	}
	return deleteResult(res), nil
}

// DeleteMany removes the listed items belonging to owner. Malformed ids are
// skipped rather than failing a payment that already settled.
func (r *CartRepository) DeleteMany(ctx context.Context, ids []string, owner string) (domain.DeleteResult, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return domain.DeleteResult{Acknowledged: true}, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}, "email": owner})
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("clear cart: %w", err)
	}
	return deleteResult(res), nil
}
