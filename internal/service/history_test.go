package service

import (
	"context"
	"testing"
	"time"

	"github.com/legalconnect/legalconnect/internal/model"
)

type fakeHistoryStore struct {
	records []*model.SearchHistoryRecord
	nextID  int64
}

func (f *fakeHistoryStore) CreateSearchHistory(_ context.Context, record *model.SearchHistoryRecord) error {
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now().UTC()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryStore) ListSearchHistory(_ context.Context, userID int64) ([]*model.SearchHistoryRecord, error) {
	out := make([]*model.SearchHistoryRecord, 0)
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
		if len(out) == model.HistoryReadLimit {
			break
		}
	}
	return out, nil
}

func TestRecordSearch(t *testing.T) {
	store := &fakeHistoryStore{}
	svc := NewHistoryService(store)

	area := "family"
	record, err := svc.Record(context.Background(), RecordInput{
		UserID:       10,
		PracticeArea: &area,
		ResultCount:  7,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if record.ID == 0 {
		t.Error("expected assigned record ID")
	}
	if record.State != nil || record.MinExperience != nil || record.MaxRate != nil {
		t.Error("absent filters must stay nil")
	}

	if _, err := svc.Record(context.Background(), RecordInput{UserID: 10, ResultCount: -1}); !IsValidation(err) {
		t.Errorf("negative result count error = %v, want ValidationError", err)
	}
}

func TestListHistory(t *testing.T) {
	store := &fakeHistoryStore{}
	svc := NewHistoryService(store)

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(context.Background(), RecordInput{UserID: 10, ResultCount: i}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if _, err := svc.Record(context.Background(), RecordInput{UserID: 11, ResultCount: 9}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	records, err := svc.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].ResultCount != 2 {
		t.Errorf("newest record ResultCount = %d, want 2", records[0].ResultCount)
	}
}
