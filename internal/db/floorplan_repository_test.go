package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wayfinder/internal/data"
	"github.com/udisondev/wayfinder/internal/db"
	"github.com/udisondev/wayfinder/internal/model"
	"github.com/udisondev/wayfinder/internal/testutil"
)

func TestFloorPlanRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewFloorPlanRepository(pool)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, db.ErrNoFloorPlan)

		_, err = repo.Fingerprint(ctx)
		assert.ErrorIs(t, err, db.ErrNoFloorPlan)
	})

	t.Run("round trip", func(t *testing.T) {
		want, err := data.Default()
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		fp, err := repo.Fingerprint(ctx)
		require.NoError(t, err)
		wantFP, err := want.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, wantFP, fp)
	})

	t.Run("save replaces", func(t *testing.T) {
		small := &model.MapData{
			Width: 100, Height: 100, GridResolution: 5,
			Floors: []model.Floor{{
				ID: "g", Name: "Ground", Level: 0,
				POIs: []model.POI{{
					ID: "door", Name: "Door", Type: model.POIEntrance, FloorID: "g",
					Position: model.Point{X: 10, Y: 10, FloorID: "g"},
				}},
			}},
		}
		require.NoError(t, repo.Save(ctx, small))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, small, got)
	})

	t.Run("invalid plan is rejected before writing", func(t *testing.T) {
		bad := &model.MapData{Width: 10, Height: 10, GridResolution: 0}
		assert.ErrorIs(t, repo.Save(ctx, bad), model.ErrInvalidResolution)

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "g", got.Floors[0].ID)
	})
}

func TestRunMigrationsIdempotent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	assert.NoError(t, db.RunMigrationsPool(context.Background(), pool))
}
