package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mustBSON(t require.TestingT, v any) bson.D {
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestRunDocSeedRoundTrip(t *testing.T) {
	for _, seed := range []uint64{0, 1, 1<<63 - 1, 1 << 63, ^uint64(0)} {
		run := &Run{ID: "x", Seed: seed}
		require.Equal(t, seed, toDoc(run).run().Seed)
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	run := testRun(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	mt.Run("save", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, s.Save(ctx, run))
	})

	mt.Run("get", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, mustBSON(mt, toDoc(run))))

		got, err := s.Get(ctx, run.ID)
		require.NoError(mt, err)
		require.Equal(mt, run.ID, got.ID)
		require.Equal(mt, run.Seed, got.Seed)
		require.True(mt, run.CreatedAt.Equal(got.CreatedAt))
		require.Equal(mt, run.Input, got.Input)
		require.Equal(mt, run.Variations, got.Variations)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := s.Get(ctx, run.ID)
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		older := testRun(run.CreatedAt.Add(-time.Hour))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			mustBSON(mt, toDoc(run)), mustBSON(mt, toDoc(older))))

		runs, err := s.List(ctx, 10)
		require.NoError(mt, err)
		require.Len(mt, runs, 2)
		require.Equal(mt, run.ID, runs[0].ID)
		require.Equal(mt, older.ID, runs[1].ID)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, s.Delete(ctx, run.ID))

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		require.ErrorIs(mt, s.Delete(ctx, run.ID), ErrNotFound)
	})

	mt.Run("write error", func(mt *mtest.T) {
		s := NewMongoStoreFromCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key",
		}))
		require.Error(mt, s.Save(ctx, run))
		require.NoError(mt, s.Close())
	})
}
