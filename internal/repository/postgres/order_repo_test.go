package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
	"github.com/taletique/tailor-portal/internal/repository/postgres"
	"github.com/taletique/tailor-portal/internal/testutil"
	"gorm.io/gorm"
)

func TestOrderRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOrderRepository(testDB.DB)
	ctx := context.Background()

	customer := testutil.NewUserBuilder().Build(t, testDB.DB)

	order := &domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		Title:       "Navy Suit",
		ServiceType: domain.ServiceFormal,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
	}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Navy Suit", got.Title)
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.False(t, got.CreatedAt.IsZero())

	t.Run("missing order", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown customer violates foreign key", func(t *testing.T) {
		err := repo.Create(ctx, &domain.Order{
			ID:          uuid.NewString(),
			CustomerID:  "nobody",
			Title:       "Orphan",
			ServiceType: domain.ServiceCasual,
			Status:      domain.StatusPending,
			Priority:    domain.PriorityMedium,
		})
		assert.Error(t, err)
	})
}

func TestOrderRepository_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOrderRepository(testDB.DB)
	ctx := context.Background()

	c1 := testutil.NewUserBuilder().WithID("c1").Build(t, testDB.DB)
	c2 := testutil.NewUserBuilder().WithID("c2").Build(t, testDB.DB)

	older := testutil.NewOrderBuilder(c1.ID).WithTitle("older").Build(t, testDB.DB)
	time.Sleep(10 * time.Millisecond)
	newer := testutil.NewOrderBuilder(c1.ID).WithTitle("newer").Build(t, testDB.DB)
	time.Sleep(10 * time.Millisecond)
	other := testutil.NewOrderBuilder(c2.ID).WithTitle("other").Build(t, testDB.DB)

	t.Run("all orders newest first", func(t *testing.T) {
		orders, err := repo.List(ctx, repository.OrderFilter{})
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, other.ID, orders[0].ID)
		assert.Equal(t, newer.ID, orders[1].ID)
		assert.Equal(t, older.ID, orders[2].ID)
	})

	t.Run("filter by customer", func(t *testing.T) {
		orders, err := repo.List(ctx, repository.OrderFilter{CustomerID: c1.ID})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
		assert.Equal(t, older.ID, orders[1].ID)
	})

	t.Run("limit and offset page the listing", func(t *testing.T) {
		page, err := repo.List(ctx, repository.OrderFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, newer.ID, page[0].ID)
	})
}

func TestOrderRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOrderRepository(testDB.DB)
	ctx := context.Background()

	customer := testutil.NewUserBuilder().Build(t, testDB.DB)
	order := testutil.NewOrderBuilder(customer.ID).Build(t, testDB.DB)

	t.Run("applies the patch and bumps updated_at", func(t *testing.T) {
		time.Sleep(10 * time.Millisecond)
		updated, err := repo.Update(ctx, order.ID, map[string]any{
			"status": domain.StatusCompleted,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.NewString(), map[string]any{
			"status": domain.StatusCompleted,
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestOrderRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOrderRepository(testDB.DB)
	ctx := context.Background()

	customer := testutil.NewUserBuilder().Build(t, testDB.DB)
	order := testutil.NewOrderBuilder(customer.ID).Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, order.ID))
	_, err := repo.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting an absent id is not an error
	assert.NoError(t, repo.Delete(ctx, order.ID))
}

func TestOrderRepository_Counts(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewOrderRepository(testDB.DB)
	ctx := context.Background()

	customer := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewOrderBuilder(customer.ID).WithStatus(domain.StatusPending).Build(t, testDB.DB)
	testutil.NewOrderBuilder(customer.ID).WithStatus(domain.StatusFittingScheduled).Build(t, testDB.DB)
	testutil.NewOrderBuilder(customer.ID).WithStatus(domain.StatusFittingScheduled).Build(t, testDB.DB)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	fittings, err := repo.CountByStatus(ctx, domain.StatusFittingScheduled)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fittings)
}
