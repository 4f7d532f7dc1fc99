package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository
// backed by an in-memory map. Any Func field overrides the default
// behavior.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc      func(ctx context.Context, account *domain.Account) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc func(ctx context.Context, number string) (*domain.Account, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	CountFunc       func(ctx context.Context) (int64, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.accounts)), nil
}

// MockBalanceRepository is a mock implementation of BalanceRepository
// keyed by (account, currency).
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]*domain.Balance

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error
	GetFunc          func(ctx context.Context, accountID string, currency domain.Currency) (*domain.Balance, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountID string, currency domain.Currency) (*domain.Balance, error)
	GetAllFunc       func(ctx context.Context, accountID string) ([]*domain.Balance, error)
	UpdateAmountFunc func(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, modifiedBy string, modifiedAt time.Time) error
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		balances: make(map[string]*domain.Balance),
	}
}

func balanceKey(accountID string, currency domain.Currency) string {
	return accountID + "/" + currency.String()
}

// Seed inserts a balance directly, bypassing any Func overrides.
func (m *MockBalanceRepository) Seed(balance *domain.Balance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balanceKey(balance.AccountID, balance.Currency)] = balance
}

// Get returns the stored balance or nil, for test assertions.
func (m *MockBalanceRepository) Get(accountID string, currency domain.Currency) *domain.Balance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[balanceKey(accountID, currency)]
}

func (m *MockBalanceRepository) Create(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := balanceKey(balance.AccountID, balance.Currency)
	if _, exists := m.balances[key]; exists {
		return fmt.Errorf("duplicate balance for %s", key)
	}
	m.balances[key] = balance
	return nil
}

func (m *MockBalanceRepository) GetByAccountAndCurrency(ctx context.Context, accountID string, currency domain.Currency) (*domain.Balance, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, accountID, currency)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[balanceKey(accountID, currency)]; ok {
		return b, nil
	}
	return nil, domain.ErrBalanceNotFound
}

func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, accountID string, currency domain.Currency) (*domain.Balance, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, accountID, currency)
	}
	return m.GetByAccountAndCurrency(ctx, accountID, currency)
}

func (m *MockBalanceRepository) GetAllByAccount(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var balances []*domain.Balance
	for _, b := range m.balances {
		if b.AccountID == accountID {
			balances = append(balances, b)
		}
	}
	return balances, nil
}

func (m *MockBalanceRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, modifiedBy string, modifiedAt time.Time) error {
	if m.UpdateAmountFunc != nil {
		return m.UpdateAmountFunc(ctx, tx, id, amount, modifiedBy, modifiedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.balances {
		if b.ID == id {
			b.Amount = amount
			b.LastModifiedBy = modifiedBy
			b.LastModifiedAt = modifiedAt
			return nil
		}
	}
	return domain.ErrBalanceNotFound
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository collecting rows in order.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	rows []*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, txn)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []*domain.Transaction
	for _, txn := range m.rows {
		if txn.AccountID == accountID {
			rows = append(rows, txn)
		}
	}
	return rows, nil
}

// Rows returns all recorded transactions, for test assertions.
func (m *MockTransactionRepository) Rows() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make([]*domain.Transaction, len(m.rows))
	copy(rows, m.rows)
	return rows
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Begun []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockRetrier runs the operation exactly once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}
