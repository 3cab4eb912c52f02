package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int64, error)
	CountProducts(ctx context.Context) (int64, error)
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepo(db *mongo.Database) ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	now := time.Now()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(dbCtx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	if err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(product); err != nil {
		return nil, notFoundOr(err, "failed to get the product")
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	product.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update the product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete the product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int64, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	query := productQuery(filter)

	total, err := r.collection.CountDocuments(dbCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count the products: %w", err)
	}

	opts := options.Find().
		SetSort(productSort(filter.SortBy)).
		SetSkip(int64((filter.Page - 1) * filter.PageSize)).
		SetLimit(int64(filter.PageSize))

	cursor, err := r.collection.Find(dbCtx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list the products: %w", err)
	}
	defer cursor.Close(dbCtx)

	products := []*models.Product{}
	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode the products: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) CountProducts(ctx context.Context) (int64, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(dbCtx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count the products: %w", err)
	}

	return count, nil
}

func productQuery(filter models.ProductFilter) bson.M {

	query := bson.M{}

	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	return query
}

func productSort(sortBy models.ProductSort) bson.D {
	switch sortBy {
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case models.SortRating:
		return bson.D{{Key: "rating", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}
