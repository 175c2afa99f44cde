package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"functionallab/coach-os/internal/repository"
)

func TestMongoSlotRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := mtest.TestDb + "." + slotCollectionName

	mt.Run("get returns stored value", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: string(repository.SlotHistory)},
			{Key: "value", Value: `[{"id":"wod-1"}]`},
			{Key: "updatedAt", Value: time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)},
		}))

		raw, err := repo.Get(ctx, repository.SlotHistory)
		require.NoError(mt, err)
		assert.JSONEq(mt, `[{"id":"wod-1"}]`, string(raw))
	})

	mt.Run("get on absent slot is not found", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.Get(ctx, repository.SlotActiveCycle)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("put upserts a new slot", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: string(repository.SlotEquipment)}},
			}},
		))

		require.NoError(mt, repo.Put(ctx, repository.SlotEquipment, []byte(`[]`)))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
	})

	mt.Run("put replaces an existing slot", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, repo.Put(ctx, repository.SlotEquipment, []byte(`[{"id":"e1"}]`)))
	})

	mt.Run("put with nothing matched or upserted fails", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Put(ctx, repository.SlotBenchmarks, []byte(`[]`))
		assert.ErrorIs(mt, err, repository.ErrUpdateFailed)
	})

	mt.Run("delete on absent slot is a no-op", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.NoError(mt, repo.Delete(ctx, repository.SlotAnnualPlan))
	})

	mt.Run("delete server error is wrapped", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		err := repo.Delete(ctx, repository.SlotAnnualPlan)
		assert.ErrorIs(mt, err, repository.ErrDeleteFailed)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, EnsureSlotIndexes(ctx, SlotCollection(mt.DB)))
	})
}
