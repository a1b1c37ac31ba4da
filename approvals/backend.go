package approvals

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonwraymond/fetchcache/cache"
)

// BackendConfig configures the in-process backend.
type BackendConfig struct {
	// Latency is added to every request. Zero answers immediately.
	Latency time.Duration

	// Employees and Transactions seed the data set.
	// Default: SampleEmployees and SampleTransactions()
	Employees    []Employee
	Transactions []Transaction
}

// Backend serves the approval endpoints from memory. It implements
// gateway.Transport and is safe for concurrent use.
type Backend struct {
	latency time.Duration

	mu           sync.Mutex
	employees    []Employee
	transactions []Transaction
	calls        map[cache.Endpoint]int
	failures     map[cache.Endpoint]int
}

// NewBackend creates a Backend.
func NewBackend(config BackendConfig) *Backend {
	if config.Employees == nil {
		config.Employees = SampleEmployees
	}
	if config.Transactions == nil {
		config.Transactions = SampleTransactions()
	}
	return &Backend{
		latency:      config.Latency,
		employees:    slices.Clone(config.Employees),
		transactions: slices.Clone(config.Transactions),
		calls:        make(map[cache.Endpoint]int),
		failures:     make(map[cache.Endpoint]int),
	}
}

// FailNext makes the next n requests to endpoint fail with ErrUnavailable.
func (b *Backend) FailNext(endpoint cache.Endpoint, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[endpoint] += n
}

// Calls returns how many requests endpoint has received.
func (b *Backend) Calls(endpoint cache.Endpoint) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[endpoint]
}

// Fetch serves one request. params may be the typed params struct or any
// value with the same JSON shape.
func (b *Backend) Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	if b.latency > 0 {
		timer := time.NewTimer(b.latency)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls[endpoint]++
	if b.failures[endpoint] > 0 {
		b.failures[endpoint]--
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, endpoint)
	}

	var (
		result any
		err    error
	)
	switch endpoint {
	case EndpointEmployees:
		result = b.employees
	case EndpointPaginatedTransactions:
		result, err = b.page(params)
	case EndpointTransactionsByEmployee:
		result, err = b.byEmployee(params)
	case EndpointSetTransactionApproval:
		result, err = nil, b.setApproval(params)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func (b *Backend) page(params any) (Paginated[Transaction], error) {
	var p PageParams
	if err := bind(params, &p); err != nil {
		return Paginated[Transaction]{}, err
	}
	if p.Page == nil || *p.Page < 0 {
		return Paginated[Transaction]{}, fmt.Errorf("%w: page is required", ErrInvalidParams)
	}

	start := *p.Page * TransactionsPerPage
	if start > len(b.transactions) {
		return Paginated[Transaction]{}, fmt.Errorf("%w: page %d out of range", ErrInvalidParams, *p.Page)
	}
	end := min(start+TransactionsPerPage, len(b.transactions))

	out := Paginated[Transaction]{Data: slices.Clone(b.transactions[start:end])}
	if end < len(b.transactions) {
		next := *p.Page + 1
		out.NextPage = &next
	}
	return out, nil
}

func (b *Backend) byEmployee(params any) ([]Transaction, error) {
	var p EmployeeParams
	if err := bind(params, &p); err != nil {
		return nil, err
	}
	if p.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee id cannot be empty", ErrInvalidParams)
	}

	out := []Transaction{}
	for _, t := range b.transactions {
		if t.Employee.ID == p.EmployeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (b *Backend) setApproval(params any) error {
	var p ApprovalParams
	if err := bind(params, &p); err != nil {
		return err
	}

	for i := range b.transactions {
		if b.transactions[i].ID == p.TransactionID {
			b.transactions[i].Approved = p.Value
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %q", ErrNotFound, p.TransactionID)
}

// bind copies params into dst through their JSON form.
func bind(params, dst any) error {
	if params == nil {
		return nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
