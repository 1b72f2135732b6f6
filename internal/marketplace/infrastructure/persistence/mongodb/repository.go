package mongodb

import (
	"context"
	"errors"

	"github.com/wyfcoding/khamyang/internal/marketplace/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seller Repository
type sellerRepository struct{ col *mongo.Collection }

func NewSellerRepository(db *mongo.Database) domain.SellerRepository {
	return &sellerRepository{col: db.Collection("sellers")}
}

func (r *sellerRepository) Save(ctx context.Context, seller *domain.Seller) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": seller.ID},
		seller,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *sellerRepository) GetByID(ctx context.Context, id string) (*domain.Seller, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *sellerRepository) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *sellerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Seller, error) {
	var s domain.Seller
	err := r.col.FindOne(ctx, filter).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Product Repository
type productRepository struct{ col *mongo.Collection }

func NewProductRepository(db *mongo.Database) domain.ProductRepository {
	return &productRepository{col: db.Collection("products")}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": product.ID},
		product,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{"status": domain.ProductStatusActive})
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	return r.list(ctx, bson.M{"seller_id": sellerID})
}

func (r *productRepository) list(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
