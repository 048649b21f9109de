package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/storage"
	"github.com/xuri/excelize/v2"
)

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memoryObjects) GetObject(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (m *memoryObjects) UploadObject(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := NewSnapshotService(newTestStore(t), nil)

	data, err := source.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}

	target := newTestStore(t)
	if err := target.DeleteProduct(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSnapshotService(target, nil).Import(ctx, data); err != nil {
		t.Fatal(err)
	}

	snap, err := target.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Products) != 5 || len(snap.SalesOrders) != 2 || len(snap.Transactions) != 3 {
		t.Fatalf("imported %d products, %d orders, %d transactions",
			len(snap.Products), len(snap.SalesOrders), len(snap.Transactions))
	}
	if snap.Counters.Sequences[domain.SequenceSalesOrder] != 2 {
		t.Fatalf("sales order counter = %d", snap.Counters.Sequences[domain.SequenceSalesOrder])
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewSnapshotService(store, nil)

	cases := map[string]string{
		"not json":       `{"products": [`,
		"future version": `{"schemaVersion": 9, "products": []}`,
		"wrong shape":    `{"products": {"id": 1}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Import(ctx, []byte(doc))
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("err = %v, want ErrInvalidSnapshot", err)
			}
		})
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 5 {
		t.Fatalf("rejected import changed the dataset: %d products", len(products))
	}
}

func TestImportWithoutVersionIsAccepted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := `{"products": [{"id": 9, "name": "Camphor", "costPrice": 4, "sellingPrice": 6, "stockQuantity": 3}]}`
	snap, err := NewSnapshotService(store, nil).Import(ctx, []byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if snap.SchemaVersion != domain.SchemaVersion || len(snap.Customers) != 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	p := &domain.Product{Name: "Benzoin"}
	if err := store.CreateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 10 {
		t.Fatalf("next product id = %d, want 10", p.ID)
	}
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	svc := NewSnapshotService(newTestStore(t), nil)

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# products\n") {
		t.Fatalf("export starts with %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, c := range domain.Collections {
		if !strings.Contains(out, "# "+string(c)+"\n") {
			t.Errorf("section %s missing", c)
		}
	}
	if !strings.Contains(out, "Rose Incense Sticks x 5 @ 12.50; Sandalwood Cones x 4 @ 23.50") {
		t.Error("order items not flattened")
	}

	buf.Reset()
	if err := svc.ExportCollectionCSV(ctx, domain.CollectionCustomers, &buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "id,name,email,phone,company,address" {
		t.Fatalf("customers csv = %q", lines)
	}
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	svc := NewSnapshotService(newTestStore(t), nil)

	var buf bytes.Buffer
	if err := svc.ExportXLSX(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != len(domain.Collections) || sheets[0] != "products" {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows("products")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 || rows[1][1] != "Rose Incense Sticks" {
		t.Fatalf("products sheet = %v", rows)
	}
}

func TestArchives(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := NewSnapshotService(store, nil).Archive(ctx); !errors.Is(err, ErrArchivesDisabled) {
		t.Fatalf("err = %v, want ErrArchivesDisabled", err)
	}

	objects := newMemoryObjects()
	svc := NewSnapshotService(store, objects)
	tick := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	first, err := svc.Archive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(first.Key, "snapshots/20260301T090") {
		t.Fatalf("key = %s", first.Key)
	}

	if err := store.DeleteCustomer(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Archive(ctx); err != nil {
		t.Fatal(err)
	}

	archives, err := svc.ListArchives(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 2 || archives[1].Key != first.Key {
		t.Fatalf("archives = %+v", archives)
	}

	if _, err := svc.RestoreArchive(ctx, "elsewhere/x.json"); err == nil {
		t.Fatal("restored a key outside the archive prefix")
	}

	restored, err := svc.RestoreArchive(ctx, first.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(restored.Customers) != 2 {
		t.Fatalf("restored %d customers, want 2", len(restored.Customers))
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(objects.objects[first.Key], &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["schemaVersion"]; !ok {
		t.Fatal("archived document has no schemaVersion")
	}
}
