package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository stores one cart document per user. Updates replace the whole
// document; concurrent writers for the same user are last-writer-wins.
type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	collection *mongo.Collection
}

func NewCartRepo(db *mongo.Database) CartRepository {
	return &cartRepository{collection: db.Collection(cartsCollection)}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	now := time.Now()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.CreatedAt = now
	cart.UpdatedAt = now

	if _, err := r.collection.InsertOne(dbCtx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to insert cart: %w: %w", ErrDuplicate, err)
		}

		return fmt.Errorf("failed to insert cart: %w", err)
	}

	return nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	if err := r.collection.FindOne(dbCtx, bson.M{"user_id": userID}).Decode(cart); err != nil {
		return nil, notFoundOr(err, "failed to get cart")
	}

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	cart.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": cart.ID}, cart)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
