package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) Create(ctx context.Context, in service.LocationInput) (*model.Location, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationService) List(ctx context.Context) ([]*model.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Location), args.Error(1)
}

func (m *MockLocationService) Update(ctx context.Context, id uint, in service.LocationInput) (*model.Location, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockAssetNameService struct {
	mock.Mock
}

func (m *MockAssetNameService) Create(ctx context.Context, in service.AssetNameInput) (*model.AssetName, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetName), args.Error(1)
}

func (m *MockAssetNameService) List(ctx context.Context) ([]*model.AssetName, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AssetName), args.Error(1)
}

func setupLocationRouter(h *LocationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/locations", h.ListLocations)
	r.POST("/locations", h.CreateLocation)
	r.PUT("/locations/:id", h.UpdateLocation)
	r.DELETE("/locations/:id", h.DeleteLocation)
	return r
}

func TestLocationHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setup          func(*MockLocationService)
		expectedStatus int
	}{
		{
			name:   "list",
			method: "GET",
			path:   "/locations",
			setup: func(svc *MockLocationService) {
				svc.On("List", mock.Anything).Return([]*model.Location{{ID: 1, Name: "Bodega"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "create",
			method: "POST",
			path:   "/locations",
			body:   `{"name":"Oficina 2","description":"Segundo piso"}`,
			setup: func(svc *MockLocationService) {
				svc.On("Create", mock.Anything, service.LocationInput{Name: "Oficina 2", Description: "Segundo piso"}).
					Return(&model.Location{ID: 2, Name: "Oficina 2"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "create duplicate",
			method: "POST",
			path:   "/locations",
			body:   `{"name":"Bodega"}`,
			setup: func(svc *MockLocationService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperr.Conflict("location %q already exists", "Bodega"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "update",
			method: "PUT",
			path:   "/locations/2",
			body:   `{"name":"Oficina 3"}`,
			setup: func(svc *MockLocationService) {
				svc.On("Update", mock.Anything, uint(2), service.LocationInput{Name: "Oficina 3"}).
					Return(&model.Location{ID: 2, Name: "Oficina 3"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "update bad id",
			method:         "PUT",
			path:           "/locations/x",
			body:           `{"name":"Oficina 3"}`,
			setup:          func(svc *MockLocationService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "delete missing",
			method: "DELETE",
			path:   "/locations/9",
			setup: func(svc *MockLocationService) {
				svc.On("Delete", mock.Anything, uint(9)).Return(apperr.NotFound("location 9 not found"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockLocationService{}
			tt.setup(mockService)
			router := setupLocationRouter(NewLocationHandler(mockService))

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAssetNameHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockService := &MockAssetNameService{}
	mockService.On("List", mock.Anything).Return([]*model.AssetName{{ID: 1, Name: "Laptop", Counter: 3}}, nil)
	mockService.On("Create", mock.Anything, service.AssetNameInput{Name: "Monitor"}).Return(&model.AssetName{ID: 2, Name: "Monitor"}, nil)

	h := NewAssetNameHandler(mockService)
	router := gin.New()
	router.GET("/asset-names", h.ListAssetNames)
	router.POST("/asset-names", h.CreateAssetName)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/asset-names", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["data"].([]interface{})
	assert.EqualValues(t, 3, items[0].(map[string]interface{})["counter"])

	req := httptest.NewRequest("POST", "/asset-names", bytes.NewBufferString(`{"name":"Monitor"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	mockService.AssertExpectations(t)
}
