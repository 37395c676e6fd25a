package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/summercamp/camp-api/internal/core/domain"
)

const paymentsCollection = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(paymentsCollection)}
}

type mongoPayment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	TransactionID string             `bson:"transactionId"`
	Price         float64            `bson:"price"`
	Date          time.Time          `bson:"date"`
	Quantity      int                `bson:"quantity"`
	CartItems     []string           `bson:"cartItems"`
	ClassItems    []string           `bson:"classItems"`
	ItemNames     []string           `bson:"itemNames,omitempty"`
	Status        string             `bson:"status,omitempty"`
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) (domain.InsertResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoPayment{
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Price:         p.Price,
		Date:          p.Date,
		Quantity:      p.Quantity,
		CartItems:     p.CartItems,
		ClassItems:    p.ClassItems,
		ItemNames:     p.ItemNames,
		Status:        p.Status,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.InsertResult{}, domain.ErrDuplicatePayment
		}
		return domain.InsertResult{}, fmt.Errorf("insert payment: %w", err)
	}
	return insertResult(res), nil
}

// ListByEmail returns the payments of email, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	var docs []mongoPayment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]domain.Payment, len(docs))
	for i, d := range docs {
		out[i] = domain.Payment{
			ID:            hexID(d.ID),
			Email:         d.Email,
			TransactionID: d.TransactionID,
			Price:         d.Price,
			Date:          d.Date,
			Quantity:      d.Quantity,
			CartItems:     d.CartItems,
			ClassItems:    d.ClassItems,
			ItemNames:     d.ItemNames,
			Status:        d.Status,
		}
	}
	return out, nil
}

// EnsureIndexes makes transactionId unique so a replay that slips past the
// Redis guard still cannot store a second payment.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
