package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// mockStorage is an in-memory service.Storage that mirrors the SQLite
// layer's upsert arithmetic, so learning-loop tests observe the same
// running averages and confidence growth as production.
type mockStorage struct {
	mu         sync.Mutex
	categories []model.Category
	merchants  map[string]*model.MerchantLearning
	patterns   map[string]*model.CategoryPattern
	cliq       map[string]*model.CliqPattern
	history    []model.CategorizationHistory
	failWrites bool
}

func newMockStorage(categories ...model.Category) *mockStorage {
	return &mockStorage{
		categories: categories,
		merchants:  make(map[string]*model.MerchantLearning),
		patterns:   make(map[string]*model.CategoryPattern),
		cliq:       make(map[string]*model.CliqPattern),
	}
}

var errMockWrite = errors.New("simulated store failure")

func (m *mockStorage) GetCategories(_ context.Context, userID int64) ([]model.Category, error) {
	var out []model.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockStorage) GetCategoryByID(_ context.Context, userID, id int64) (*model.Category, error) {
	for i := range m.categories {
		if m.categories[i].UserID == userID && m.categories[i].ID == id {
			return &m.categories[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func merchantKey(userID int64, merchant string, categoryID int64, mt model.MessageType) string {
	return fmt.Sprintf("%d|%s|%d|%s", userID, merchant, categoryID, mt)
}

func (m *mockStorage) GetMerchantLearnings(_ context.Context, userID int64, merchant string, mt model.MessageType) ([]model.MerchantLearning, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.MerchantLearning
	for _, row := range m.merchants {
		if row.UserID == userID && row.Merchant == merchant && row.MessageType == mt {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *mockStorage) UpsertMerchantLearning(_ context.Context, userID int64, merchant string, categoryID int64, mt model.MessageType, amount float64) error {
	if m.failWrites {
		return errMockWrite
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := merchantKey(userID, merchant, categoryID, mt)
	if row, ok := m.merchants[key]; ok {
		row.AverageAmount = (row.AverageAmount*float64(row.UseCount) + amount) / float64(row.UseCount+1)
		row.UseCount++
		row.Confidence = math.Min(row.Confidence*1.1, 0.95)
		row.LastUsed = time.Now()
		return nil
	}
	m.merchants[key] = &model.MerchantLearning{
		UserID:        userID,
		Merchant:      merchant,
		CategoryID:    categoryID,
		MessageType:   mt,
		Confidence:    0.7,
		AverageAmount: amount,
		UseCount:      1,
		LastUsed:      time.Now(),
	}
	return nil
}

func patternKey(userID, categoryID int64, mt model.MessageType) string {
	return fmt.Sprintf("%d|%d|%s", userID, categoryID, mt)
}

func (m *mockStorage) GetCategoryPatterns(_ context.Context, userID int64, mt model.MessageType) ([]model.CategoryPattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CategoryPattern
	for _, p := range m.patterns {
		if p.UserID == userID && p.MessageType == mt {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStorage) GetCategoryPattern(_ context.Context, userID, categoryID int64, mt model.MessageType) (*model.CategoryPattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.patterns[patternKey(userID, categoryID, mt)]; ok {
		cp := *p
		cp.Ranges = append([]model.AmountRange(nil), p.Ranges...)
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (m *mockStorage) RecordCategoryAmount(_ context.Context, userID, categoryID int64, mt model.MessageType, amount float64) error {
	if m.failWrites {
		return errMockWrite
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := patternKey(userID, categoryID, mt)
	p, ok := m.patterns[key]
	if !ok {
		p = &model.CategoryPattern{UserID: userID, CategoryID: categoryID, MessageType: mt}
		m.patterns[key] = p
	}

	absorbed := false
	for i := range p.Ranges {
		r := &p.Ranges[i]
		if amount < r.Min*0.8 || amount > r.Max*1.2 {
			continue
		}
		r.Min = math.Min(r.Min, amount)
		r.Max = math.Max(r.Max, amount)
		r.Frequency = math.Min(r.Frequency+0.1, 1.0)
		absorbed = true
		break
	}
	if !absorbed {
		p.Ranges = append(p.Ranges, model.AmountRange{Min: amount * 0.9, Max: amount * 1.1, Frequency: 0.5})
	}
	p.TransactionCount++
	p.LastUpdated = time.Now()
	return nil
}

func cliqKey(userID int64, sender string, txType model.TransactionType) string {
	return fmt.Sprintf("%d|%s|%s", userID, sender, txType)
}

func (m *mockStorage) GetCliqPattern(_ context.Context, userID int64, sender string, txType model.TransactionType) (*model.CliqPattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.cliq[cliqKey(userID, sender, txType)]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (m *mockStorage) UpsertCliqPattern(_ context.Context, userID int64, sender string, txType model.TransactionType, categoryID int64, amount float64, businessLike bool) error {
	if m.failWrites {
		return errMockWrite
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := cliqKey(userID, sender, txType)
	if p, ok := m.cliq[key]; ok {
		delta := amount - p.AverageAmount
		p.AverageAmount = (p.AverageAmount*float64(p.UseCount) + amount) / float64(p.UseCount+1)
		p.AmountVariance = (p.AmountVariance*float64(p.UseCount) + delta*delta) / float64(p.UseCount+1)
		p.UseCount++
		p.Confidence = math.Min(p.Confidence*1.05, 0.9)
		p.CategoryID = categoryID
		p.IsRecurring = p.UseCount >= 3
		p.IsBusinessLike = businessLike
		p.LastSeen = time.Now()
		return nil
	}
	m.cliq[key] = &model.CliqPattern{
		UserID:          userID,
		Sender:          sender,
		TransactionType: txType,
		CategoryID:      categoryID,
		AverageAmount:   amount,
		Confidence:      0.6,
		UseCount:        1,
		IsBusinessLike:  businessLike,
		LastSeen:        time.Now(),
	}
	return nil
}

func (m *mockStorage) AppendHistory(_ context.Context, row *model.CategorizationHistory) error {
	if m.failWrites {
		return errMockWrite
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *row)
	return nil
}

func (m *mockStorage) GetCategoryAmountStats(_ context.Context, userID int64) ([]model.CategoryAmountStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sums := make(map[int64]*model.CategoryAmountStats)
	sq := make(map[int64]float64)
	for _, h := range m.history {
		if h.UserID != userID {
			continue
		}
		s, ok := sums[h.CategoryID]
		if !ok {
			s = &model.CategoryAmountStats{CategoryID: h.CategoryID}
			sums[h.CategoryID] = s
		}
		s.Count++
		s.Mean += h.Amount
		sq[h.CategoryID] += h.Amount * h.Amount
	}

	var out []model.CategoryAmountStats
	for id, s := range sums {
		n := float64(s.Count)
		s.Mean /= n
		variance := sq[id]/n - s.Mean*s.Mean
		if variance > 0 {
			s.StdDev = math.Sqrt(variance)
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStorage) Migrate(_ context.Context) error { return nil }
func (m *mockStorage) Close() error                    { return nil }

// mockLedger records finalized entries. duplicate simulates the replay
// detection of the SQLite layer.
type mockLedger struct {
	mu        sync.Mutex
	entries   []ledgerEntry
	fail      bool
	duplicate bool
}

type ledgerEntry struct {
	txn        *model.ParsedTransaction
	userID     int64
	categoryID int64
	confidence float64
}

func (m *mockLedger) CreateEntry(_ context.Context, userID int64, txn *model.ParsedTransaction, categoryID int64, confidence float64) error {
	if m.fail {
		return errMockWrite
	}
	if m.duplicate {
		return fmt.Errorf("%w: message already recorded", common.ErrDuplicateEntry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, ledgerEntry{txn: txn, userID: userID, categoryID: categoryID, confidence: confidence})
	return nil
}
