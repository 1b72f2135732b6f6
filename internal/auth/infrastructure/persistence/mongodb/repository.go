package mongodb

import (
	"context"
	"errors"

	"github.com/wyfcoding/khamyang/internal/auth/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User Repository
type userRepository struct{ col *mongo.Collection }

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepository{col: db.Collection("users")}
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		user,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Admin Repository
type adminRepository struct{ col *mongo.Collection }

func NewAdminRepository(db *mongo.Database) domain.AdminRepository {
	return &adminRepository{col: db.Collection("admin")}
}

func (r *adminRepository) Save(ctx context.Context, admin *domain.Admin) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": admin.Username},
		admin,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.col.FindOne(ctx, bson.M{"_id": username}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
