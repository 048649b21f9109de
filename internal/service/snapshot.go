package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/andresuchdata/agarbatti/backend-go/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const archivePrefix = "snapshots/"

var (
	// ErrInvalidSnapshot wraps documents that cannot be imported.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrArchivesDisabled is returned when no object storage is configured.
	ErrArchivesDisabled = errors.New("snapshot archives are not configured")
)

// SnapshotService moves the whole dataset in and out of the store.
type SnapshotService struct {
	store   repository.SnapshotStore
	objects storage.ObjectStorage
	now     func() time.Time
}

// NewSnapshotService accepts a nil objects; archive calls then fail with
// ErrArchivesDisabled.
func NewSnapshotService(store repository.SnapshotStore, objects storage.ObjectStorage) *SnapshotService {
	return &SnapshotService{store: store, objects: objects, now: time.Now}
}

// Export renders the full dataset as indented JSON.
func (s *SnapshotService) Export(ctx context.Context) ([]byte, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap.SchemaVersion = domain.SchemaVersion
	snap.LastUpdated = s.now().UTC()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Import replaces every collection with the contents of data. Nothing is
// written unless the whole document parses and its version is supported.
func (s *SnapshotService) Import(ctx context.Context, data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snap.CheckVersion(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	snap.Normalize()

	if err := s.store.Replace(ctx, &snap); err != nil {
		return nil, fmt.Errorf("replace dataset: %w", err)
	}
	log.Info().
		Int("products", len(snap.Products)).
		Int("sales_orders", len(snap.SalesOrders)).
		Int("transactions", len(snap.Transactions)).
		Msg("dataset imported")
	return &snap, nil
}

// ExportCSV writes every collection as its own section: a "# name" line,
// a header row, the records and a blank separator line.
func (s *SnapshotService) ExportCSV(ctx context.Context, w io.Writer) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	for i, c := range domain.Collections {
		t, err := collectionTable(snap, c)
		if err != nil {
			return err
		}
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"# " + string(c)}); err != nil {
			return err
		}
		if err := writeTable(cw, t); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *SnapshotService) ExportCollectionCSV(ctx context.Context, c domain.Collection, w io.Writer) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	t, err := collectionTable(snap, c)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := writeTable(cw, t); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(cw *csv.Writer, t table) error {
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// ExportXLSX writes a workbook with one sheet per collection.
func (s *SnapshotService) ExportXLSX(ctx context.Context, w io.Writer) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, c := range domain.Collections {
		sheet := string(c)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		t, err := collectionTable(snap, c)
		if err != nil {
			return err
		}
		if err := setRow(f, sheet, 1, t.Header); err != nil {
			return err
		}
		for r, row := range t.Rows {
			if err := setRow(f, sheet, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// Archive stores the current export in object storage.
func (s *SnapshotService) Archive(ctx context.Context) (*storage.ObjectInfo, error) {
	if s.objects == nil {
		return nil, ErrArchivesDisabled
	}
	data, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s%s-%s.json", archivePrefix, now.Format("20060102T150405Z"), uuid.NewString())
	if err := s.objects.UploadObject(ctx, key, data); err != nil {
		return nil, err
	}
	log.Info().Str("key", key).Int("bytes", len(data)).Msg("snapshot archived")
	return &storage.ObjectInfo{Key: key, Size: int64(len(data)), LastModified: now}, nil
}

// ListArchives returns archives newest first.
func (s *SnapshotService) ListArchives(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.objects == nil {
		return nil, ErrArchivesDisabled
	}
	objects, err := s.objects.ListObjects(ctx, archivePrefix)
	if err != nil {
		return nil, err
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Key > objects[j].Key
	})
	return objects, nil
}

// RestoreArchive imports a previously archived snapshot.
func (s *SnapshotService) RestoreArchive(ctx context.Context, key string) (*domain.Snapshot, error) {
	if s.objects == nil {
		return nil, ErrArchivesDisabled
	}
	if !strings.HasPrefix(key, archivePrefix) {
		return nil, fieldError("key", "prefix")
	}
	data, err := s.objects.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, data)
}
