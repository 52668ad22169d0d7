//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"fitness-tracker/internal/domain"
	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/adapter"
	"fitness-tracker/internal/domain/ports/repository"
)

// =============================
// Repositories
// =============================

// ---- Mock UserRepository ----

// MockUserRepo keeps users in memory by default; assign a Func field to
// override a single method for a test.
type MockUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User

	SaveFunc                  func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindByIDFunc              func(ctx context.Context, tx repository.Tx, id string) (*model.User, error)
	FindByEmailFunc           func(ctx context.Context, tx repository.Tx, email string) (*model.User, error)
	SearchByEmailFragmentFunc func(ctx context.Context, tx repository.Tx, fragment string) ([]*model.User, error)
	FindBornBeforeFunc        func(ctx context.Context, tx repository.Tx, cutoff time.Time) ([]*model.User, error)
	ListAllFunc               func(ctx context.Context, tx repository.Tx) ([]*model.User, error)
	DeleteFunc                func(ctx context.Context, tx repository.Tx, id string) error
	ExistsFunc                func(ctx context.Context, tx repository.Tx, id string) (bool, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{store: make(map[string]*model.User)}
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, tx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) SearchByEmailFragment(ctx context.Context, tx repository.Tx, fragment string) ([]*model.User, error) {
	if m.SearchByEmailFragmentFunc != nil {
		return m.SearchByEmailFragmentFunc(ctx, tx, fragment)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	needle := strings.ToLower(fragment)
	for _, u := range m.store {
		if strings.Contains(strings.ToLower(u.Email), needle) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sortUsersByEmail(out)
	return out, nil
}

func (m *MockUserRepo) FindBornBefore(ctx context.Context, tx repository.Tx, cutoff time.Time) ([]*model.User, error) {
	if m.FindBornBeforeFunc != nil {
		return m.FindBornBeforeFunc(ctx, tx, cutoff)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		if u.Birthdate.Before(cutoff) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sortUsersByEmail(out)
	return out, nil
}

func (m *MockUserRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, tx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, 0, len(m.store))
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	sortUsersByEmail(out)
	return out, nil
}

func (m *MockUserRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MockUserRepo) Exists(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[id]
	return ok, nil
}

func sortUsersByEmail(users []*model.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
}

// ---- Mock TrainingRepository ----

type MockTrainingRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Training

	SaveFunc              func(ctx context.Context, tx repository.Tx, t *model.Training) error
	FindByIDFunc          func(ctx context.Context, tx repository.Tx, id string) (*model.Training, error)
	ListAllFunc           func(ctx context.Context, tx repository.Tx) ([]*model.Training, error)
	FindByUserIDFunc      func(ctx context.Context, tx repository.Tx, userID string) ([]*model.Training, error)
	FindEndedAfterFunc    func(ctx context.Context, tx repository.Tx, t time.Time) ([]*model.Training, error)
	FindByActivityFunc    func(ctx context.Context, tx repository.Tx, activityType model.ActivityType) ([]*model.Training, error)
	FindByUserInRangeFunc func(ctx context.Context, tx repository.Tx, userID string, start, end time.Time) ([]*model.Training, error)
}

var _ repository.TrainingRepository = (*MockTrainingRepo)(nil)

func NewMockTrainingRepo() *MockTrainingRepo {
	return &MockTrainingRepo{store: make(map[string]*model.Training)}
}

func (m *MockTrainingRepo) Save(ctx context.Context, tx repository.Tx, t *model.Training) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *MockTrainingRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Training, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockTrainingRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Training, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, tx)
	}
	return m.filter(func(*model.Training) bool { return true }), nil
}

func (m *MockTrainingRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) ([]*model.Training, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, tx, userID)
	}
	return m.filter(func(t *model.Training) bool { return t.User != nil && t.User.ID == userID }), nil
}

func (m *MockTrainingRepo) FindEndedAfter(ctx context.Context, tx repository.Tx, after time.Time) ([]*model.Training, error) {
	if m.FindEndedAfterFunc != nil {
		return m.FindEndedAfterFunc(ctx, tx, after)
	}
	return m.filter(func(t *model.Training) bool { return t.EndTime.After(after) }), nil
}

func (m *MockTrainingRepo) FindByActivityType(ctx context.Context, tx repository.Tx, activityType model.ActivityType) ([]*model.Training, error) {
	if m.FindByActivityFunc != nil {
		return m.FindByActivityFunc(ctx, tx, activityType)
	}
	return m.filter(func(t *model.Training) bool { return t.ActivityType == activityType }), nil
}

func (m *MockTrainingRepo) FindByUserInRange(ctx context.Context, tx repository.Tx, userID string, start, end time.Time) ([]*model.Training, error) {
	if m.FindByUserInRangeFunc != nil {
		return m.FindByUserInRangeFunc(ctx, tx, userID, start, end)
	}
	return m.filter(func(t *model.Training) bool {
		if t.User == nil || t.User.ID != userID {
			return false
		}
		return !t.EndTime.Before(start) && !t.EndTime.After(end)
	}), nil
}

func (m *MockTrainingRepo) filter(keep func(*model.Training) bool) []*model.Training {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Training
	for _, t := range m.store {
		if keep(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Mock ReportRunRepository ----

type MockReportRunRepo struct {
	mu   sync.Mutex
	runs map[string]*model.ReportRun

	SaveFunc   func(ctx context.Context, tx repository.Tx, run *model.ReportRun) error
	ExistsFunc func(ctx context.Context, tx repository.Tx, period string) (bool, error)
}

var _ repository.ReportRunRepository = (*MockReportRunRepo)(nil)

func NewMockReportRunRepo() *MockReportRunRepo {
	return &MockReportRunRepo{runs: make(map[string]*model.ReportRun)}
}

func (m *MockReportRunRepo) Save(ctx context.Context, tx repository.Tx, run *model.ReportRun) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *run
	m.runs[run.Period] = &cp
	return nil
}

func (m *MockReportRunRepo) Exists(ctx context.Context, tx repository.Tx, period string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, tx, period)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.runs[period]
	return ok, nil
}

// =============================
// Adapters
// =============================

// ---- Mock NotificationDispatcher ----

type MockDispatcher struct {
	mu        sync.Mutex
	Delivered []model.NotificationRequest

	DispatchFunc func(req model.NotificationRequest) error
}

var _ adapter.NotificationDispatcher = (*MockDispatcher)(nil)

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) Dispatch(req model.NotificationRequest) error {
	if m.DispatchFunc != nil {
		return m.DispatchFunc(req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Delivered = append(m.Delivered, req)
	return nil
}

// =============================
// Infra helpers for tests
// =============================

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs the function immediately without a real transaction. Assign
// WithTxFunc to verify transactional behavior explicitly.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func mustUser(first, last, born, email string) *model.User {
	birthdate, err := time.Parse("2006-01-02", born)
	if err != nil {
		panic(err)
	}
	u, err := model.NewUser("", first, last, birthdate, email)
	if err != nil {
		panic(err)
	}
	return u
}
