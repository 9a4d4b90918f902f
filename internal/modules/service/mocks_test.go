package service

import (
	"context"
	"time"

	"github.com/assetlabel/inventory/internal/infra/blob"
	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/stretchr/testify/mock"
)

// MockAssetRepo is a mock implementation of repo.AssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, a *model.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepo) GetByID(ctx context.Context, id uint) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) GetByAssetID(ctx context.Context, assetID string) (*model.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) ListByAssetIDs(ctx context.Context, assetIDs []string) ([]*model.Asset, error) {
	args := m.Called(ctx, assetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) Update(ctx context.Context, a *model.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepo) SetQRCodePath(ctx context.Context, id uint, path *string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockAssetRepo) Delete(ctx context.Context, id uint) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) List(ctx context.Context, f repo.AssetFilter) ([]*model.Asset, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetRepo) ListIdentifiers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAssetRepo) Stats(ctx context.Context) (*repo.AssetStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.AssetStats), args.Error(1)
}

type MockAssetNameRepo struct {
	mock.Mock
}

func (m *MockAssetNameRepo) Create(ctx context.Context, n *model.AssetName) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockAssetNameRepo) List(ctx context.Context) ([]*model.AssetName, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AssetName), args.Error(1)
}

func (m *MockAssetNameRepo) Use(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type MockCounterRepo struct {
	mock.Mock
}

func (m *MockCounterRepo) Increment(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepo) Current(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockQRCache struct {
	mock.Mock
}

func (m *MockQRCache) Get(ctx context.Context, assetID string) (string, bool, error) {
	args := m.Called(ctx, assetID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockQRCache) Set(ctx context.Context, assetID, dataURL string) error {
	args := m.Called(ctx, assetID, dataURL)
	return args.Error(0)
}

func (m *MockQRCache) Delete(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchange, routingKey string, body any) error {
	args := m.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

func (m *MockPublisher) Enqueue(ctx context.Context, queue string, body any) error {
	args := m.Called(ctx, queue, body)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	args := m.Called(ctx, name, ttl)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(func(context.Context) error), args.Bool(1), args.Error(2)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Key(kind, fileName string) string {
	args := m.Called(kind, fileName)
	return args.String(0)
}

func (m *MockBlobStore) UploadFile(ctx context.Context, key, localPath string) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, key, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockBlobStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
