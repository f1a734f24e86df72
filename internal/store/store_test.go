package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/store"
)

func TestMemory(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	id, err := m.Save(ctx, domain.Record{Kind: domain.KindCourse, ID: "hsc", Title: "HSC"})
	require.NoError(t, err)
	require.Equal(t, "hsc", id)

	records, err := m.List(ctx, domain.KindCourse)
	require.NoError(t, err)
	require.Len(t, records, 1)

	t.Run("generates an id when the record has none", func(t *testing.T) {
		id, err := m.Save(ctx, domain.Record{Kind: domain.KindCourse, Title: "Untitled"})
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})

	t.Run("rejects a duplicate id within a kind", func(t *testing.T) {
		_, err := m.Save(ctx, domain.Record{Kind: domain.KindCourse, ID: "hsc"})
		require.Error(t, err)
	})

	t.Run("same id across kinds is allowed", func(t *testing.T) {
		_, err := m.Save(ctx, domain.Record{Kind: domain.KindExam, ID: "hsc"})
		require.NoError(t, err)
	})

	t.Run("list returns a copy", func(t *testing.T) {
		records, err := m.List(ctx, domain.KindExam)
		require.NoError(t, err)
		records[0].Title = "mutated"

		again, err := m.List(ctx, domain.KindExam)
		require.NoError(t, err)
		require.NotEqual(t, "mutated", again[0].Title)
	})

	t.Run("unknown kind lists empty", func(t *testing.T) {
		records, err := m.List(ctx, domain.Kind("webinar"))
		require.NoError(t, err)
		require.Empty(t, records)
	})
}
