package approvals

import "github.com/jonwraymond/fetchcache/cache"

// Registered endpoints.
const (
	EndpointEmployees              cache.Endpoint = "employees"
	EndpointPaginatedTransactions  cache.Endpoint = "paginatedTransactions"
	EndpointTransactionsByEmployee cache.Endpoint = "transactionsByEmployee"
	EndpointSetTransactionApproval cache.Endpoint = "setTransactionApproval"
)

// TransactionsPerPage is the page size of EndpointPaginatedTransactions.
const TransactionsPerPage = 5

// Employee is a card holder.
type Employee struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Transaction is one card charge awaiting or holding approval.
type Transaction struct {
	ID       string   `json:"id"`
	Amount   float64  `json:"amount"`
	Employee Employee `json:"employee"`
	Merchant string   `json:"merchant"`
	Date     string   `json:"date"`
	Approved bool     `json:"approved"`
}

// Paginated is one page of results. NextPage is nil on the last page.
type Paginated[T any] struct {
	Data     []T  `json:"data"`
	NextPage *int `json:"nextPage"`
}

// PageParams selects a page of EndpointPaginatedTransactions.
type PageParams struct {
	Page *int `json:"page"`
}

// EmployeeParams selects one employee's transactions.
type EmployeeParams struct {
	EmployeeID string `json:"employeeId"`
}

// ApprovalParams sets a transaction's approval.
type ApprovalParams struct {
	TransactionID string `json:"transactionId"`
	Value         bool   `json:"value"`
}
