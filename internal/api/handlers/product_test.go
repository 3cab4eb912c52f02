package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupProductTest() (*mocks.ProductService, *handlers.ProductHandler) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)
	return mockProductService, productHandler
}

func TestCreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest()
		payload := models.CreateProductRequest{Name: "Shirt", Description: "Cotton", Category: "apparel", Price: 19.99, Stock: 4}
		body, _ := json.Marshal(payload)
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body), uuid.New(), nil)
		recorder := httptest.NewRecorder()

		created := &models.Product{ID: primitive.NewObjectID(), Name: "Shirt", Category: "apparel", Price: 19.99, Stock: 4}
		mockProductService.On("CreateProduct", mock.Anything, &payload).Return(created, nil).Once()

		// Act
		productHandler.CreateProduct()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		resp := decodeResponse(t, recorder)
		require.True(t, resp.Success)
		assert.Equal(t, created.ID.Hex(), resp.Data.(map[string]any)["id"])

		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/products",
			bytes.NewBufferString(`{"name":"ab","description":"x","category":"c","price":0}`), uuid.New(), nil)
		recorder := httptest.NewRecorder()

		productHandler.CreateProduct()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "Field name must be at least 3 characters")
		assert.Contains(t, resp.Error.Details, "Field price is required")
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestGetProduct(t *testing.T) {
	productID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.Hex(), nil, map[string]string{"id": productID.Hex()})
		recorder := httptest.NewRecorder()

		mockProductService.On("GetProduct", mock.Anything, productID).Return(&models.Product{ID: productID, Name: "Shirt"}, nil).Once()

		productHandler.GetProduct()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "Shirt", decodeResponse(t, recorder).Data.(map[string]any)["name"])
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.Hex(), nil, map[string]string{"id": productID.Hex()})
		recorder := httptest.NewRecorder()

		mockProductService.On("GetProduct", mock.Anything, productID).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		productHandler.GetProduct()(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/nope", nil, map[string]string{"id": "nope"})
		recorder := httptest.NewRecorder()

		productHandler.GetProduct()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockProductService.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	params := map[string]string{"id": productID.Hex()}

	t.Run("Success - Partial Update", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateAdminTestRequest(http.MethodPut, "/api/v1/products/"+productID.Hex(),
			bytes.NewBufferString(`{"price":24.5}`), uuid.New(), params)
		recorder := httptest.NewRecorder()

		mockProductService.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(r *models.UpdateProductRequest) bool {
			return r.Price != nil && *r.Price == 24.5 && r.Name == nil && r.Stock == nil
		})).Return(&models.Product{ID: productID, Price: 24.5}, nil).Once()

		productHandler.UpdateProduct()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Negative Stock", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateAdminTestRequest(http.MethodPut, "/api/v1/products/"+productID.Hex(),
			bytes.NewBufferString(`{"stock":-1}`), uuid.New(), params)
		recorder := httptest.NewRecorder()

		productHandler.UpdateProduct()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockProductService.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Delete", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/products/"+productID.Hex(), nil, uuid.New(), params)
		recorder := httptest.NewRecorder()

		mockProductService.On("DeleteProduct", mock.Anything, productID).Return(nil).Once()

		productHandler.DeleteProduct()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "Product removed", decodeResponse(t, recorder).Data.(map[string]any)["message"])
		mockProductService.AssertExpectations(t)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Success - Filters Parsed", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet,
			"/api/v1/products?categories=apparel,%20shoes,&minPrice=10&maxPrice=50.5&search=%20shirt%20&sortBy=price_desc&page=3&pageSize=20", nil, nil)
		recorder := httptest.NewRecorder()

		products := []*models.Product{{ID: primitive.NewObjectID(), Name: "Shirt"}}
		mockProductService.On("ListProducts", mock.Anything, mock.MatchedBy(func(f models.ProductFilter) bool {
			return assert.ObjectsAreEqual([]string{"apparel", "shoes"}, f.Categories) &&
				f.MinPrice != nil && *f.MinPrice == 10 &&
				f.MaxPrice != nil && *f.MaxPrice == 50.5 &&
				f.Search == "shirt" &&
				f.SortBy == models.SortPriceDesc &&
				f.Page == 3 && f.PageSize == 20
		})).Return(products, int64(41), nil).Once()

		productHandler.ListProducts()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		data := decodeResponse(t, recorder).Data.(map[string]any)
		assert.Equal(t, float64(41), data["total"])
		assert.Len(t, data["data"], 1)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Success - Empty Catalog", func(t *testing.T) {
		mockProductService, productHandler := setupProductTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)
		recorder := httptest.NewRecorder()

		mockProductService.On("ListProducts", mock.Anything, mock.MatchedBy(func(f models.ProductFilter) bool {
			return f.Page == 1 && f.PageSize == 10 && f.MinPrice == nil && f.SortBy == ""
		})).Return(nil, int64(0), nil).Once()

		productHandler.ListProducts()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, []any{}, decodeResponse(t, recorder).Data.(map[string]any)["data"])
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Bad Query", func(t *testing.T) {
		for name, query := range map[string]string{
			"Negative Price": "?minPrice=-1",
			"Non Numeric":    "?maxPrice=cheap",
			"Unknown Sort":   "?sortBy=popularity",
		} {
			t.Run(name, func(t *testing.T) {
				mockProductService, productHandler := setupProductTest()
				req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products"+query, nil, nil)
				recorder := httptest.NewRecorder()

				productHandler.ListProducts()(recorder, req)

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, recorder).Error.Code)
				mockProductService.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
			})
		}
	})
}
