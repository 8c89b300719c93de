package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and start time", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		run := &docfold.Run{Seed: "https://example.com/docs/intro"}

		require.NoError(t, archive.CreateRun(context.Background(), run))
		assert.NotEmpty(t, run.ID)
		assert.False(t, run.StartedAt.IsZero())

		got, err := archive.FindRun(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.Seed, got.Seed)
		assert.True(t, got.FinishedAt.IsZero())
	})

	t.Run("rejects run without seed", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		err := archive.CreateRun(context.Background(), &docfold.Run{})
		require.Error(t, err)
		assert.Equal(t, docfold.EINVALID, docfold.ErrorCode(err))
	})
}

func TestArchive_FinishRun(t *testing.T) {
	t.Parallel()

	t.Run("records end time and counts", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		ctx := context.Background()

		run := &docfold.Run{Seed: "https://example.com/docs/intro"}
		require.NoError(t, archive.CreateRun(ctx, run))

		run.Cleaned = 5
		run.Empty = 1
		run.Failed = 2
		require.NoError(t, archive.FinishRun(ctx, run))

		got, err := archive.FindRun(ctx, run.ID)
		require.NoError(t, err)
		assert.False(t, got.FinishedAt.IsZero())
		assert.Equal(t, 5, got.Cleaned)
		assert.Equal(t, 1, got.Empty)
		assert.Equal(t, 2, got.Failed)
		assert.Equal(t, 0, got.Skipped)
	})

	t.Run("unknown run is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		err := archive.FinishRun(context.Background(), &docfold.Run{ID: "missing", Seed: "s"})
		require.Error(t, err)
		assert.Equal(t, docfold.ENOTFOUND, docfold.ErrorCode(err))
	})
}

func TestArchive_SavePages(t *testing.T) {
	t.Parallel()

	t.Run("round-trips pages in discovery order", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		ctx := context.Background()

		run := &docfold.Run{Seed: "https://example.com/docs/intro"}
		require.NoError(t, archive.CreateRun(ctx, run))

		now := time.Now().UTC().Truncate(time.Second)
		pages := []*docfold.Page{
			{URL: "https://example.com/docs/guide", Depth: 1, Seq: 1,
				Title: "Guide", Content: "## Guide", ContentHash: "bb",
				Status: docfold.StatusCleaned, FetchedAt: now},
			{URL: "https://example.com/docs/intro", Depth: 0, Seq: 0,
				Title: "Intro", Content: "# Intro", ContentHash: "aa",
				Status: docfold.StatusCleaned, FetchedAt: now},
		}
		require.NoError(t, archive.SavePages(ctx, run.ID, pages))

		got, err := archive.FindPagesByRun(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "https://example.com/docs/intro", got[0].URL)
		assert.Equal(t, "https://example.com/docs/guide", got[1].URL)
		assert.Equal(t, docfold.StatusCleaned, got[0].Status)
		assert.Equal(t, now, got[0].FetchedAt)
	})

	t.Run("stores failure details", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		ctx := context.Background()

		run := &docfold.Run{Seed: "https://example.com/docs/intro"}
		require.NoError(t, archive.CreateRun(ctx, run))

		pages := []*docfold.Page{
			{URL: "https://example.com/docs/broken", Seq: 0,
				Status: docfold.StatusFailed, FetchError: "HTTP 500",
				FetchedAt: time.Now().UTC()},
		}
		require.NoError(t, archive.SavePages(ctx, run.ID, pages))

		got, err := archive.FindPagesByRun(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, docfold.StatusFailed, got[0].Status)
		assert.Equal(t, "HTTP 500", got[0].FetchError)
	})

	t.Run("rejects invalid pages", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		ctx := context.Background()

		run := &docfold.Run{Seed: "https://example.com/docs/intro"}
		require.NoError(t, archive.CreateRun(ctx, run))

		err := archive.SavePages(ctx, run.ID, []*docfold.Page{{URL: ""}})
		require.Error(t, err)
		assert.Equal(t, docfold.EINVALID, docfold.ErrorCode(err))
	})
}

func TestArchive_FindRun(t *testing.T) {
	t.Parallel()

	t.Run("unknown ID is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		_, err := archive.FindRun(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, docfold.ENOTFOUND, docfold.ErrorCode(err))
	})
}

func TestArchive_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("lists most recent first", func(t *testing.T) {
		t.Parallel()

		archive := sqlite.NewArchive(mustOpenDB(t))
		ctx := context.Background()

		first := &docfold.Run{Seed: "https://example.com/docs/a"}
		require.NoError(t, archive.CreateRun(ctx, first))

		// Started timestamps have second resolution in the archive.
		time.Sleep(1100 * time.Millisecond)

		second := &docfold.Run{Seed: "https://example.com/docs/b"}
		require.NoError(t, archive.CreateRun(ctx, second))

		runs, err := archive.FindRuns(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, second.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)
	})
}
