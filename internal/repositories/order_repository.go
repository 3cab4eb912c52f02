package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int64, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error

	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	DailySales(ctx context.Context, since time.Time) ([]models.DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection(ordersCollection)}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(dbCtx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	if err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(order); err != nil {
		return nil, notFoundOr(err, "failed to get order")
	}

	return order, nil
}

func (r *orderRepository) GetOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	if err := r.collection.FindOne(dbCtx, bson.M{"payment_result.id": paymentID}).Decode(order); err != nil {
		return nil, notFoundOr(err, "failed to get order by payment")
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(dbCtx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(dbCtx)

	orders := []*models.Order{}
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int64, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	total, err := r.collection.CountDocuments(dbCtx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(dbCtx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(dbCtx)

	orders := []*models.Order{}
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	order.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *orderRepository) CountOrders(ctx context.Context) (int64, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(dbCtx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) TotalRevenue(ctx context.Context) (float64, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_paid": true}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total_price"}}}},
	}

	cursor, err := r.collection.Aggregate(dbCtx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(dbCtx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(dbCtx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	return rows[0].Revenue, nil
}

// DailySales groups paid orders created at or after since by UTC calendar day.
func (r *orderRepository) DailySales(ctx context.Context, since time.Time) ([]models.DailySales, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_paid": true, "created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"revenue": bson.M{"$sum": "$total_price"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(dbCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily sales: %w", err)
	}
	defer cursor.Close(dbCtx)

	sales := []models.DailySales{}
	if err := cursor.All(dbCtx, &sales); err != nil {
		return nil, fmt.Errorf("failed to decode daily sales: %w", err)
	}

	return sales, nil
}

func (r *orderRepository) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {

	dbCtx, cancel := withStoreTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_paid": true}}},
		{{Key: "$unwind", Value: "$order_items"}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$order_items.product_id",
			"name":          bson.M{"$first": "$order_items.name"},
			"total_sold":    bson.M{"$sum": "$order_items.quantity"},
			"total_revenue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$order_items.price", "$order_items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"total_sold": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(dbCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}
	defer cursor.Close(dbCtx)

	products := []models.TopProduct{}
	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode top products: %w", err)
	}

	return products, nil
}
