package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dronedelivery/internal/adapters/out/filesystem"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `{
  "city": {"grid_size": {"width": 10, "height": 10}},
  "drones": {"fleet": [{"id": "D1", "max_payload": 10, "max_distance": 20, "speed": 1, "available": true}]},
  "orders": [{"id": "O1", "delivery_x": 2, "delivery_y": 3, "package_weight": 5}]
}`

func TestSnapshotFileReader_Read(t *testing.T) {
	reader := filesystem.NewSnapshotFileReader()

	t.Run("should read json snapshots", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input_1.json")
		require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o600))

		s, err := reader.Read(t.Context(), path)

		require.NoError(t, err)
		assert.Len(t, s.Drones(), 1)
		assert.Len(t, s.Orders(), 1)
	})

	t.Run("should read yaml snapshots by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input_1.yml")
		doc := "city: {grid_size: [3, 3]}\ndrones: {fleet: []}\norders: []\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		s, err := reader.Read(t.Context(), path)

		require.NoError(t, err)
		assert.Equal(t, 3, s.Grid().Width())
	})

	t.Run("should report missing files as not found", func(t *testing.T) {
		_, err := reader.Read(t.Context(), filepath.Join(t.TempDir(), "missing.json"))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should name the file in decode errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"city": {}}`), 0o600))

		_, err := reader.Read(t.Context(), path)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), path)
		assert.Contains(t, err.Error(), "city.grid_size")
	})

	t.Run("should honour cancelled contexts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := reader.Read(ctx, "whatever.json")

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPlanFileWriter_Write(t *testing.T) {
	writer := filesystem.NewPlanFileWriter()

	a, err := plan.NewAssignment(kernel.MustNewID("D1"), []kernel.ID{kernel.MustNewID("O1")}, 10)
	require.NoError(t, err)
	p, err := plan.NewPlan([]plan.Assignment{a}, nil)
	require.NoError(t, err)

	t.Run("should write the plan and create missing directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "output_1.json")

		require.NoError(t, writer.Write(t.Context(), path, p))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"assignments": [{"id": "D1", "orders": ["O1"], "total_distance": 10}]}`, string(data))
	})

	t.Run("should replace existing files without leaving temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "output_1.json")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

		require.NoError(t, writer.Write(t.Context(), path, plan.EmptyPlan()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"assignments": []}`, string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("should reject a nil plan", func(t *testing.T) {
		err := writer.Write(t.Context(), filepath.Join(t.TempDir(), "x.json"), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
