// Package archive keeps a file-based copy of finalized orders: one JSON
// receipt per order under a fixed directory, with statistics derived by
// scanning that directory on demand rather than querying the database.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
)

// Module provides the archive store to Fx.
var Module = fx.Provide(NewStore)

// ErrNotFound is returned when no receipt exists for an order number.
var ErrNotFound = errors.New("receipt not found")

// Receipt is the archived form of one finalized order.
type Receipt struct {
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []ReceiptItem   `json:"items"`
}

// ReceiptItem is one line of an archived receipt.
type ReceiptItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary aggregates the archive directory contents.
type Summary struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ItemsSold    map[string]int  `json:"items_sold"`
}

// TopItems returns the best-selling archived items, highest count first.
func (s Summary) TopItems(n int) []string {
	names := make([]string, 0, len(s.ItemsSold))
	for name := range s.ItemsSold {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.ItemsSold[names[i]] != s.ItemsSold[names[j]] {
			return s.ItemsSold[names[i]] > s.ItemsSold[names[j]]
		}
		return names[i] < names[j]
	})
	if n > 0 && len(names) > n {
		names = names[:n]
	}
	return names
}

// Store reads and writes receipts under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore ensures the archive directory exists and returns the store.
func NewStore(cfg config.Config, logger *zap.Logger) (*Store, error) {
	dir := cfg.Archive.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// NewStoreAt builds a store rooted at an explicit directory.
func NewStoreAt(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Write persists one receipt as <order number>.json and returns the path.
func (s *Store) Write(receipt Receipt) (string, error) {
	if receipt.OrderNumber == "" {
		return "", errors.New("receipt has no order number")
	}
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode receipt: %w", err)
	}
	path := filepath.Join(s.dir, receipt.OrderNumber+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

// Read loads the receipt for an order number.
func (s *Store) Read(orderNumber string) (*Receipt, error) {
	path := filepath.Join(s.dir, orderNumber+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read receipt: %w", err)
	}
	var receipt Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &receipt, nil
}

// Summarize scans every receipt in the directory and aggregates order count,
// revenue, and per-item sales. Unreadable files are logged and skipped so a
// single corrupt receipt never breaks reporting.
func (s *Store) Summarize() (Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Summary{}, fmt.Errorf("scan archive dir: %w", err)
	}

	summary := Summary{
		TotalRevenue: decimal.Zero,
		ItemsSold:    make(map[string]int),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		number := strings.TrimSuffix(entry.Name(), ".json")
		receipt, err := s.Read(number)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable receipt", zap.String("file", entry.Name()), zap.Error(err))
			}
			continue
		}
		summary.TotalOrders++
		summary.TotalRevenue = summary.TotalRevenue.Add(receipt.Total)
		for _, item := range receipt.Items {
			summary.ItemsSold[item.Name] += item.Quantity
		}
	}
	return summary, nil
}
