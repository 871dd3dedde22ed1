package orders

import (
	"echoeats/app/config"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const dateLayout = "2006-01-02"

// Service keeps the order log in memory and mirrors it to a single JSON
// file on every append. Durability is best-effort: a failed write is
// logged and the in-memory state stays authoritative.
type Service struct {
	cfg  *config.Config
	path string

	mu     sync.RWMutex
	orders []Order
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	s := &Service{
		cfg:  cfg,
		path: cfg.Orders.Path,
	}

	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	s.load()

	return s, nil
}

func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("Failed to read orders file, starting empty",
				"path", s.path,
				"error", err)
		}
		return
	}

	var file orderFile
	if err = json.Unmarshal(data, &file); err != nil {
		slog.Error("Failed to parse orders file, starting empty",
			"path", s.path,
			"error", err)
		return
	}

	s.orders = file.Orders
}

func (s *Service) Append(order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, order)

	if err := s.save(); err != nil {
		slog.Error("Failed to save orders file",
			"path", s.path,
			"error", err)
	}
}

// save rewrites the whole file through a temp file rename so a crashed
// writer never leaves a truncated document behind. Caller holds the lock.
func (s *Service) save() error {
	data, err := json.MarshalIndent(orderFile{Orders: s.orders}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err = os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace orders file: %w", err)
	}

	return nil
}

func (s *Service) ByDate(date, userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pie.Filter(s.orders, func(o Order) bool {
		return o.UserID == userID && o.Date == date
	})
}

func (s *Service) ByDayOfWeek(day, userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pie.Filter(s.orders, func(o Order) bool {
		return o.UserID == userID && strings.EqualFold(o.DayOfWeek, day)
	})
}

func (s *Service) ByDateRange(startDate, endDate, userID string) ([]Order, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}

	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Order
	for _, o := range s.orders {
		if o.UserID != userID {
			continue
		}

		date, err := time.Parse(dateLayout, o.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse order date %q: %w", o.Date, err)
		}

		// Inclusive on both ends
		if !date.Before(start) && !date.After(end) {
			result = append(result, o)
		}
	}

	return result, nil
}

func (s *Service) ByItemName(itemName, userID string) []Order {
	needle := strings.ToLower(itemName)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return pie.Filter(s.orders, func(o Order) bool {
		if o.UserID != userID {
			return false
		}

		for _, item := range o.Items {
			if strings.Contains(strings.ToLower(item.Name), needle) {
				return true
			}
		}

		return false
	})
}

// Latest returns the order with the greatest date for the user. Equal
// dates keep store order (first one wins).
func (s *Service) Latest(userID string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		latest Order
		found  bool
	)

	for _, o := range s.orders {
		if o.UserID != userID {
			continue
		}

		if !found || o.Date > latest.Date {
			latest = o
			found = true
		}
	}

	return latest, found
}
