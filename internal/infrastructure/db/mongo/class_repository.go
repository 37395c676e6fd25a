package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

const (
	classesCollection     = "classes"
	instructorsCollection = "instructors"
)

type ClassRepository struct {
	col *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{col: db.Collection(classesCollection)}
}

type mongoClass struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Image           string             `bson:"image,omitempty"`
	InstructorName  string             `bson:"instructorName"`
	InstructorEmail string             `bson:"instructorEmail"`
	AvailableSeats  int                `bson:"availableSeats"`
	Price           float64            `bson:"price"`
	Enrolled        int                `bson:"enrolled"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty"`
}

func (mc *mongoClass) toDomain() domain.Class {
	return domain.Class{
		ID:              hexID(mc.ID),
		Name:            mc.Name,
		Image:           mc.Image,
		InstructorName:  mc.InstructorName,
		InstructorEmail: mc.InstructorEmail,
		AvailableSeats:  mc.AvailableSeats,
		Price:           mc.Price,
		Enrolled:        mc.Enrolled,
		Status:          domain.ClassStatus(mc.Status),
		CreatedAt:       mc.CreatedAt,
	}
}

// List returns classes matching filter.
func (r *ClassRepository) List(ctx context.Context, filter ports.ClassFilter) ([]domain.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := bson.M{}
	if filter.InstructorEmail != "" {
		q["instructorEmail"] = filter.InstructorEmail
	}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}

	cur, err := r.col.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	var docs []mongoClass
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	out := make([]domain.Class, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// Create inserts a new class document.
func (r *ClassRepository) Create(ctx context.Context, c *domain.Class) (domain.InsertResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoClass{
		Name:            c.Name,
		Image:           c.Image,
		InstructorName:  c.InstructorName,
		InstructorEmail: c.InstructorEmail,
		AvailableSeats:  c.AvailableSeats,
		Price:           c.Price,
		Enrolled:        c.Enrolled,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
	})
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("insert class: %w", err)
	}
	return insertResult(res), nil
}

// Enroll takes one seat with a single conditional update so concurrent
// enrollments can never push availableSeats below zero.
func (r *ClassRepository) Enroll(ctx context.Context, classID string) error {
	oid, err := objectID(classID)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": oid, "availableSeats": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"enrolled": 1, "availableSeats": -1}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrClassFull
}

// EnsureIndexes creates the lookup indexes on the classes collection.
func (r *ClassRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructorEmail", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// InstructorRepository reads the instructors collection.
type InstructorRepository struct {
	col *mongo.Collection
}

func NewInstructorRepository(db *mongo.Database) *InstructorRepository {
	return &InstructorRepository{col: db.Collection(instructorsCollection)}
}

type mongoInstructor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Image        string             `bson:"image,omitempty"`
	ClassesTaken int                `bson:"classesTaken"`
	ClassNames   []string           `bson:"classNames,omitempty"`
}

func (r *InstructorRepository) List(ctx context.Context) ([]domain.Instructor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	var docs []mongoInstructor
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}

	out := make([]domain.Instructor, len(docs))
	for i, d := range docs {
		out[i] = domain.Instructor{
			ID:           hexID(d.ID),
			Name:         d.Name,
			Email:        d.Email,
			Image:        d.Image,
			ClassesTaken: d.ClassesTaken,
			ClassNames:   d.ClassNames,
		}
	}
	return out, nil
}
