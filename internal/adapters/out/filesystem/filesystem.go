// Package filesystem reads snapshots from and writes plans to local files. The
// encoding follows the file extension: .yaml and .yml are YAML, anything else JSON.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dronedelivery/internal/adapters/codec"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/pkg/errs"
)

// SnapshotFileReader implements ports.SnapshotReader over file paths.
type SnapshotFileReader struct{}

func NewSnapshotFileReader() *SnapshotFileReader {
	return &SnapshotFileReader{}
}

// Read loads the snapshot at path. A missing file is reported as
// errs.ObjectNotFoundError.
func (r *SnapshotFileReader) Read(ctx context.Context, path string) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewObjectNotFoundErrorWithCause("snapshot file", path, err)
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	s, err := codec.DecodeSnapshot(bytes.NewReader(data), codec.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}

// PlanFileWriter implements ports.PlanWriter over file paths.
type PlanFileWriter struct {
	perm fs.FileMode
}

func NewPlanFileWriter() *PlanFileWriter {
	return &PlanFileWriter{perm: 0o644}
}

// Write stores the plan artifact at path. The file is written to a temporary
// sibling first and renamed into place, so readers never see a partial plan.
func (w *PlanFileWriter) Write(ctx context.Context, path string, p *plan.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return errs.NewValueIsRequiredError("plan")
	}

	var buf bytes.Buffer
	if err := codec.EncodePlan(&buf, p, codec.FormatFromPath(path)); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write plan file: %w", err)
	}
	if err = tmp.Chmod(w.perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod plan file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close plan file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename plan file: %w", err)
	}
	return nil
}
