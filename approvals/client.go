package approvals

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/fetchcache/gateway"
)

// Client is the typed view of the approval endpoints over a Gateway.
type Client struct {
	g *gateway.Gateway
}

// NewClient creates a Client.
func NewClient(g *gateway.Gateway) (*Client, error) {
	if g == nil {
		return nil, errors.New("approvals: gateway is nil")
	}
	return &Client{g: g}, nil
}

// Employees returns every employee, cached.
func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	return gateway.FetchWithCache[[]Employee](ctx, c.g, EndpointEmployees, nil)
}

// TransactionsPage returns one page of transactions, cached per page.
func (c *Client) TransactionsPage(ctx context.Context, page int) (Paginated[Transaction], error) {
	return gateway.FetchWithCache[Paginated[Transaction]](ctx, c.g, EndpointPaginatedTransactions, PageParams{Page: &page})
}

// TransactionsByEmployee returns one employee's transactions, cached per
// employee.
func (c *Client) TransactionsByEmployee(ctx context.Context, employeeID string) ([]Transaction, error) {
	return gateway.FetchWithCache[[]Transaction](ctx, c.g, EndpointTransactionsByEmployee, EmployeeParams{EmployeeID: employeeID})
}

// SetTransactionApproval records the approval, bypassing the cache, then
// invalidates every cached page and the cached list of employeeID. Lists
// cached for other employees are kept. Nothing is invalidated when the
// mutation fails.
func (c *Client) SetTransactionApproval(ctx context.Context, transactionID, employeeID string, value bool) error {
	params := ApprovalParams{TransactionID: transactionID, Value: value}
	if _, err := gateway.FetchWithoutCache[any](ctx, c.g, EndpointSetTransactionApproval, params); err != nil {
		return err
	}

	byEmployee, err := c.g.CacheKey(EndpointTransactionsByEmployee, EmployeeParams{EmployeeID: employeeID})
	if err != nil {
		return err
	}
	if err := c.g.ClearCacheByEndpoint(ctx, string(EndpointPaginatedTransactions), byEmployee); err != nil {
		return fmt.Errorf("approvals: invalidate after approval of %s: %w", transactionID, err)
	}
	return nil
}

// Warm prefetches the employee list and the first page.
func (c *Client) Warm(ctx context.Context) error {
	first := 0
	return c.g.Prefetch(ctx, 2,
		gateway.Request{Endpoint: EndpointEmployees},
		gateway.Request{Endpoint: EndpointPaginatedTransactions, Params: PageParams{Page: &first}},
	)
}

// Loading reports whether any request is in flight.
func (c *Client) Loading() bool {
	return c.g.Loading()
}
