package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/catalog_api/internal/events"
	"github.com/Skotchmaster/catalog_api/internal/repo"
	"github.com/Skotchmaster/catalog_api/internal/transport"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, ev events.ProductEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func eventOfType(typ string, id int64) any {
	return mock.MatchedBy(func(ev events.ProductEvent) bool {
		return ev.Type == typ && ev.ProductID == id
	})
}

func TestCatalogService_CreateProduct(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, eventOfType(events.ProductCreated, 2)).Return(nil).Once()

	svc := NewCatalogService(repo.NewMemoryRepo(repo.SeedProducts()...), pub)

	prod, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{Name: "Mouse", Price: ptr(999.0)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, prod.ID)
	assert.Equal(t, "Mouse", prod.Name)
	assert.Equal(t, 999.0, prod.Price)
	assert.Equal(t, "", prod.Description)

	pub.AssertExpectations(t)
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	tests := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{name: "missing name", req: transport.CreateProductRequest{Price: ptr(1.0)}},
		{name: "missing price", req: transport.CreateProductRequest{Name: "Mouse"}},
		{name: "empty body", req: transport.CreateProductRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &mockPublisher{}
			r := repo.NewMemoryRepo()
			svc := NewCatalogService(r, pub)

			_, err := svc.CreateProduct(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrValidation)

			items, err := r.GetProducts(context.Background())
			require.NoError(t, err)
			assert.Empty(t, items)
			pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestErrValidation_Message(t *testing.T) {
	assert.Equal(t, ValidationMessage, ErrValidation.Error())
	assert.Equal(t, "Name and price are required", ErrValidation.Error())
}

func TestCatalogService_ZeroPriceIsAccepted(t *testing.T) {
	svc := NewCatalogService(repo.NewMemoryRepo(), nil)

	prod, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{Name: "Sticker", Price: ptr(0.0)})
	require.NoError(t, err)
	assert.Zero(t, prod.Price)
}

func TestCatalogService_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := NewCatalogService(repo.NewMemoryRepo(), pub)

	prod, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{Name: "Mouse", Price: ptr(999.0)})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(context.Background(), prod.ID, transport.PatchProductRequest{Price: ptr(5.0)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), prod.ID))
	pub.AssertNumberOfCalls(t, "Publish", 3)
}

func TestCatalogService_UpdateAndDelete(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, eventOfType(events.ProductUpdated, 1)).Return(nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(events.ProductDeleted, 1)).Return(nil).Once()

	svc := NewCatalogService(repo.NewMemoryRepo(repo.SeedProducts()...), pub)
	ctx := context.Background()

	updated, err := svc.UpdateProduct(ctx, 1, transport.PatchProductRequest{Price: ptr(17999.0)})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, 17999.0, updated.Price)

	require.NoError(t, svc.DeleteProduct(ctx, 1))

	_, err = svc.GetProduct(ctx, 1)
	require.ErrorIs(t, err, repo.ErrNotFound)

	pub.AssertExpectations(t)
}

func TestCatalogService_MissingProductDoesNotPublish(t *testing.T) {
	pub := &mockPublisher{}
	svc := NewCatalogService(repo.NewMemoryRepo(), pub)
	ctx := context.Background()

	_, err := svc.UpdateProduct(ctx, 9, transport.PatchProductRequest{Name: ptr("x")})
	require.ErrorIs(t, err, repo.ErrNotFound)
	require.ErrorIs(t, svc.DeleteProduct(ctx, 9), repo.ErrNotFound)

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
