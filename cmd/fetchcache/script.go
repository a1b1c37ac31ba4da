package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/jonwraymond/fetchcache/approvals"
	"github.com/jonwraymond/fetchcache/health"
)

// runScript walks through a typical approval session: load the lists,
// read them again from cache, approve one transaction and reread.
func runScript(ctx context.Context, s *session, w io.Writer) error {
	step := func(name string, fn func() (string, error)) error {
		start := time.Now()
		summary, err := fn()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		keys, err := s.store.Keys(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-34s %-28s %8s  entries=%d\n", name, summary, time.Since(start).Round(time.Microsecond), len(keys))
		return nil
	}

	if err := step("warm employees + page 0", func() (string, error) {
		return "ok", s.client.Warm(ctx)
	}); err != nil {
		return err
	}

	var employees []approvals.Employee
	if err := step("employees (cached)", func() (string, error) {
		var err error
		employees, err = s.client.Employees(ctx)
		return fmt.Sprintf("%d employees", len(employees)), err
	}); err != nil {
		return err
	}

	for _, page := range []int{0, 1, 0} {
		if err := step(fmt.Sprintf("page %d", page), func() (string, error) {
			p, err := s.client.TransactionsPage(ctx, page)
			return fmt.Sprintf("%d transactions", len(p.Data)), err
		}); err != nil {
			return err
		}
	}

	if len(employees) == 0 {
		return nil
	}
	target := employees[0]
	var pending *approvals.Transaction
	for _, e := range employees[:min(2, len(employees))] {
		if err := step("transactions of "+e.FirstName, func() (string, error) {
			txs, err := s.client.TransactionsByEmployee(ctx, e.ID)
			if e.ID == target.ID {
				for i := range txs {
					if !txs[i].Approved {
						pending = &txs[i]
						break
					}
				}
			}
			return fmt.Sprintf("%d transactions", len(txs)), err
		}); err != nil {
			return err
		}
	}

	if pending != nil {
		if err := step("approve "+pending.ID, func() (string, error) {
			return "invalidated", s.client.SetTransactionApproval(ctx, pending.ID, target.ID, true)
		}); err != nil {
			return err
		}
		keys, err := s.store.Keys(ctx)
		if err != nil {
			return err
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  kept %s\n", k)
		}
		if err := step("page 0 (refetched)", func() (string, error) {
			p, err := s.client.TransactionsPage(ctx, 0)
			return fmt.Sprintf("%d transactions", len(p.Data)), err
		}); err != nil {
			return err
		}
	}

	results := s.health.CheckAll(ctx)
	fmt.Fprintf(w, "health: %s\n", health.OverallStatus(results))
	for _, name := range s.health.CheckerNames() {
		fmt.Fprintf(w, "  %-10s %-9s %s\n", name, results[name].Status, results[name].Message)
	}

	if err := s.gateway.ClearCache(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "cache cleared")
	return nil
}
