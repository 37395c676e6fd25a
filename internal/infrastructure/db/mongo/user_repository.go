package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/summercamp/camp-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the role store backed by the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name,omitempty"`
	Photo     string             `bson:"photo,omitempty"`
	Role      string             `bson:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	Profile   bson.M             `bson:",inline"`
}

func (mu *mongoUser) toDomain() *domain.User {
	role, err := domain.ParseRole(mu.Role)
	if err != nil {
		// Unknown stored roles grant nothing.
		role = domain.RoleNone
	}
	return &domain.User{
		ID:        hexID(mu.ID),
		Email:     mu.Email,
		Name:      mu.Name,
		Photo:     mu.Photo,
		Role:      role,
		Profile:   mu.Profile,
		CreatedAt: mu.CreatedAt,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// InsertIfAbsent looks the email up before inserting. The unique index on
// email catches the window between the two calls; a duplicate key there is
// reported the same way as a hit on the lookup.
func (r *UserRepository) InsertIfAbsent(ctx context.Context, user *domain.User) (domain.InsertResult, bool, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return domain.InsertResult{}, false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.InsertResult{}, false, err
	}

	doc := mongoUser{
		Email:     user.Email,
		Name:      user.Name,
		Photo:     user.Photo,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		Profile:   bson.M(user.Profile),
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.InsertResult{}, false, nil
		}
		return domain.InsertResult{}, false, fmt.Errorf("insert user: %w", err)
	}
	return insertResult(res), true, nil
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": string(role)}})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("set role: %w", err)
	}
	return updateResult(res), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.User, len(docs))
	for i := range docs {
		out[i] = *docs[i].toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the unique email index that backs InsertIfAbsent.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
