package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService interface {
	GetOrCreateCart(ctx context.Context, userID string) (*models.CartView, error)
	AddItem(ctx context.Context, userID string, req *models.AddItemRequest) (*models.CartView, error)
	UpdateItemQuantity(ctx context.Context, userID string, lineID primitive.ObjectID, quantity int) (*models.CartView, error)
	RemoveItem(ctx context.Context, userID string, lineID primitive.ObjectID) (*models.CartView, error)
	ClearCart(ctx context.Context, userID string) (*models.CartView, error)
}

// cartService prices every cart against the live catalog. It always reads
// products from the store, never from the catalog cache.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetOrCreateCart implements CartService. Lines whose product was deleted are
// dropped and the cleaned cart is written back; a failed write-back is logged
// and the cleaned view is still returned.
func (s *cartService) GetOrCreateCart(ctx context.Context, userID string) (*models.CartView, error) {

	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, kept, err := s.resolveProducts(ctx, cart.Items, nil)
	if err != nil {
		return nil, err
	}

	total := ComputeTotal(kept, productPrices(products))

	if len(kept) != len(cart.Items) || total != cart.TotalAmount {
		cart.Items = kept
		cart.TotalAmount = total

		if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to persist cart cleanup",
				slog.String("cartId", cart.ID.Hex()),
				slog.Any("error", err))
		}
	}

	return newCartView(cart, products), nil
}

// AddItem implements CartService.
func (s *cartService) AddItem(ctx context.Context, userID string, req *models.AddItemRequest) (*models.CartView, error) {

	if req.Quantity < 1 {
		return nil, errors.AddValidationError("quantity", "must be at least 1")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, errors.AddValidationError("product_id", "must be a valid id")
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.ValidationError("Product does not exist").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := lineIndexByProduct(cart.Items, productID)

	requested := req.Quantity
	if idx >= 0 {
		requested += cart.Items[idx].Quantity
	}

	if requested > product.Stock {
		metrics.CartMutations.WithLabelValues("add", "out_of_stock").Inc()
		return nil, errors.OutOfStockError("Insufficient stock for product: " + product.Name)
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = requested
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Quantity:  requested,
		})
	}

	view, err := s.reprice(ctx, cart, map[primitive.ObjectID]*models.Product{productID: product})
	if err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("add", "ok").Inc()

	return view, nil
}

// UpdateItemQuantity implements CartService.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID string, lineID primitive.ObjectID, quantity int) (*models.CartView, error) {

	if quantity < 1 {
		return nil, errors.AddValidationError("quantity", "must be at least 1")
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := lineIndexByID(cart.Items, lineID)
	if idx < 0 {
		return nil, errors.NotFoundError("Cart item not found")
	}

	product, err := s.productRepo.GetProductByID(ctx, cart.Items[idx].ProductID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product no longer available").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if quantity > product.Stock {
		metrics.CartMutations.WithLabelValues("update", "out_of_stock").Inc()
		return nil, errors.OutOfStockError("Insufficient stock for product: " + product.Name)
	}

	cart.Items[idx].Quantity = quantity

	view, err := s.reprice(ctx, cart, map[primitive.ObjectID]*models.Product{product.ID: product})
	if err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("update", "ok").Inc()

	return view, nil
}

// RemoveItem implements CartService. Removing a line that is not in the cart
// succeeds and leaves the lines unchanged.
func (s *cartService) RemoveItem(ctx context.Context, userID string, lineID primitive.ObjectID) (*models.CartView, error) {

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if idx := lineIndexByID(cart.Items, lineID); idx >= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}

	view, err := s.reprice(ctx, cart, nil)
	if err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("remove", "ok").Inc()

	return view, nil
}

// ClearCart implements CartService.
func (s *cartService) ClearCart(ctx context.Context, userID string) (*models.CartView, error) {

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = []models.CartItem{}
	cart.TotalAmount = 0

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.CartMutations.WithLabelValues("clear", "ok").Inc()

	return newCartView(cart, nil), nil
}

func (s *cartService) findCart(ctx context.Context, userID string) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Cart not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) findOrCreate(ctx context.Context, userID string) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}

	err = s.cartRepo.CreateCart(ctx, cart)
	if stdErrors.Is(err, repository.ErrDuplicate) {
		// another request created it first
		cart, err = s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		return cart, nil
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// reprice recomputes the total from scratch against current prices, persists
// the whole cart and returns its view. Lines whose product has vanished are
// dropped.
func (s *cartService) reprice(ctx context.Context, cart *models.Cart, known map[primitive.ObjectID]*models.Product) (*models.CartView, error) {

	products, kept, err := s.resolveProducts(ctx, cart.Items, known)
	if err != nil {
		return nil, err
	}

	cart.Items = kept
	cart.TotalAmount = ComputeTotal(kept, productPrices(products))

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return newCartView(cart, products), nil
}

// resolveProducts looks up the product of every line, skipping ids already in
// known. It returns the lookup table and the lines whose product still exists.
func (s *cartService) resolveProducts(ctx context.Context, items []models.CartItem, known map[primitive.ObjectID]*models.Product) (map[primitive.ObjectID]*models.Product, []models.CartItem, error) {

	products := make(map[primitive.ObjectID]*models.Product, len(items))
	for id, p := range known {
		products[id] = p
	}

	kept := make([]models.CartItem, 0, len(items))

	for _, item := range items {
		if _, ok := products[item.ProductID]; !ok {
			product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
			if err != nil {
				if stdErrors.Is(err, repository.ErrNotFound) {
					continue
				}

				return nil, nil, errors.DatabaseError("Failed to fetch product").WithError(err)
			}

			products[item.ProductID] = product
		}

		kept = append(kept, item)
	}

	return products, kept, nil
}

func newCartView(cart *models.Cart, products map[primitive.ObjectID]*models.Product) *models.CartView {

	view := &models.CartView{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       make([]models.CartItemView, 0, len(cart.Items)),
		TotalAmount: cart.TotalAmount,
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}

		view.Items = append(view.Items, models.CartItemView{
			ID:       item.ID,
			Product:  product.Summary(),
			Quantity: item.Quantity,
		})
	}

	return view
}

func lineIndexByProduct(items []models.CartItem, productID primitive.ObjectID) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

func lineIndexByID(items []models.CartItem, lineID primitive.ObjectID) int {
	for i, item := range items {
		if item.ID == lineID {
			return i
		}
	}

	return -1
}
