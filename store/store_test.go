package store_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/usersapi/store"
)

// --- Fake DynamoDB Client ---

// fakeDynamo is an in-memory stand-in for the DynamoDB client. It keeps raw
// items keyed by userid and serves scans in pages of pageSize items.
type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	order    []string
	pageSize int
	err      error

	lastTable string
	scanCalls int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		items:    make(map[string]map[string]types.AttributeValue),
		pageSize: 100,
	}
}

func keyOf(key map[string]types.AttributeValue) string {
	if v, ok := key["userid"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastTable = aws.ToString(params.TableName)
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(params.Key)]}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastTable = aws.ToString(params.TableName)
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(params.Item)
	if _, ok := f.items[id]; !ok {
		f.order = append(f.order, id)
	}
	f.items[id] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.lastTable = aws.ToString(params.TableName)
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(params.Key)
	delete(f.items, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.lastTable = aws.ToString(params.TableName)
	f.scanCalls++
	if f.err != nil {
		return nil, f.err
	}
	if params.Select != types.SelectAllAttributes {
		return nil, errors.New("expected Select ALL_ATTRIBUTES")
	}

	start := 0
	if params.ExclusiveStartKey != nil {
		start, _ = strconv.Atoi(keyOf(params.ExclusiveStartKey))
	}
	end := start + f.pageSize
	if end > len(f.order) {
		end = len(f.order)
	}

	out := &dynamodb.ScanOutput{}
	for _, id := range f.order[start:end] {
		out.Items = append(out.Items, f.items[id])
	}
	if end < len(f.order) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"userid": &types.AttributeValueMemberS{Value: strconv.Itoa(end)},
		}
	}
	return out, nil
}

var _ store.API = (*fakeDynamo)(nil)

// --- Config Tests ---

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()
	if cfg.Table != "users" {
		t.Errorf("expected Table 'users', got %q", cfg.Table)
	}
}

func TestNew_EmptyTableUsesDefault(t *testing.T) {
	s := store.New(newFakeDynamo(), store.Config{})
	if s.Table() != "users" {
		t.Errorf("expected default table 'users', got %q", s.Table())
	}
}

func TestNew_CustomTable(t *testing.T) {
	client := newFakeDynamo()
	s := store.New(client, store.Config{Table: "users-dev"})

	if _, err := s.ScanAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastTable != "users-dev" {
		t.Errorf("expected calls against 'users-dev', got %q", client.lastTable)
	}
}

// --- Put/Get Tests ---

func TestPutGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	rec := store.Record{
		"userid":    "u-1",
		"timestamp": "2024-01-01T00:00:00Z",
		"name":      "Ada",
		"age":       float64(36),
		"admin":     true,
		"tags":      []any{"math", "engines"},
		"address":   map[string]any{"city": "London"},
	}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "u-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got["name"] != "Ada" {
		t.Errorf("expected name 'Ada', got %v", got["name"])
	}
	if got["age"] != float64(36) {
		t.Errorf("expected age 36, got %v (%T)", got["age"], got["age"])
	}
	if got["admin"] != true {
		t.Errorf("expected admin true, got %v", got["admin"])
	}
	tags, ok := got["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "math" {
		t.Errorf("expected tags [math engines], got %v", got["tags"])
	}
	addr, ok := got["address"].(map[string]any)
	if !ok || addr["city"] != "London" {
		t.Errorf("expected address.city 'London', got %v", got["address"])
	}
}

func TestPut_FullOverwrite(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	if err := s.Put(ctx, store.Record{"userid": "u-1", "name": "Ada", "email": "ada@example.com"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, store.Record{"userid": "u-1", "name": "Bob"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "u-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got["name"] != "Bob" {
		t.Errorf("expected name 'Bob', got %v", got["name"])
	}
	if _, ok := got["email"]; ok {
		t.Error("expected email to be gone after full overwrite")
	}
}

func TestPut_MissingUserID(t *testing.T) {
	client := newFakeDynamo()
	s := store.New(client, store.DefaultConfig())

	tests := []struct {
		name string
		rec  store.Record
	}{
		{"absent", store.Record{"name": "Ada"}},
		{"empty", store.Record{"userid": ""}},
		{"not a string", store.Record{"userid": float64(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Put(context.Background(), tt.rec)
			if !errors.Is(err, store.ErrMissingUserID) {
				t.Errorf("expected ErrMissingUserID, got %v", err)
			}
		})
	}

	if len(client.items) != 0 {
		t.Errorf("expected no items written, got %d", len(client.items))
	}
}

func TestGet_NotFound(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ClientError(t *testing.T) {
	client := newFakeDynamo()
	client.err = errors.New("throttled")
	s := store.New(client, store.DefaultConfig())

	_, err := s.Get(context.Background(), "u-1")
	if err == nil || !errors.Is(err, client.err) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Error("client error must not be reported as ErrNotFound")
	}
}

// --- Delete Tests ---

func TestDelete_Existing(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	if err := s.Put(ctx, store.Record{"userid": "u-1"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Delete(ctx, "u-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "u-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDelete_MissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	for i := 0; i < 2; i++ {
		if err := s.Delete(ctx, "missing"); err != nil {
			t.Errorf("attempt %d: expected nil, got %v", i+1, err)
		}
	}
}

func TestDelete_ClientError(t *testing.T) {
	client := newFakeDynamo()
	client.err = errors.New("unavailable")
	s := store.New(client, store.DefaultConfig())

	if err := s.Delete(context.Background(), "u-1"); !errors.Is(err, client.err) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

// --- ScanAll Tests ---

func TestScanAll_Empty(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	records, err := s.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil {
		t.Error("expected non-nil slice for empty table")
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}

func TestScanAll_FollowsPages(t *testing.T) {
	ctx := context.Background()
	client := newFakeDynamo()
	client.pageSize = 2
	s := store.New(client, store.DefaultConfig())

	for i := 0; i < 5; i++ {
		if err := s.Put(ctx, store.Record{"userid": "u-" + strconv.Itoa(i)}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	records, err := s.ScanAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	if client.scanCalls != 3 {
		t.Errorf("expected 3 scan pages, got %d", client.scanCalls)
	}

	var ids []string
	for _, r := range records {
		ids = append(ids, r.UserID())
	}
	sort.Strings(ids)
	for i, id := range ids {
		if id != "u-"+strconv.Itoa(i) {
			t.Errorf("expected id u-%d at %d, got %q", i, i, id)
		}
	}
}

func TestScanAll_ClientError(t *testing.T) {
	client := newFakeDynamo()
	client.err = errors.New("access denied")
	s := store.New(client, store.DefaultConfig())

	records, err := s.ScanAll(context.Background())
	if !errors.Is(err, client.err) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
	if records != nil {
		t.Errorf("expected nil records on error, got %v", records)
	}
}
