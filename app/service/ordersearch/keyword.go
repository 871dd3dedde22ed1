package ordersearch

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"echoeats/app/service/orders"
)

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var foodKeywords = []string{
	"pizza", "burger", "pasta", "salad", "wings", "fish", "chicken", "nachos",
}

// KeywordSearch is the deterministic resolver strategy: it classifies a
// free-text query by literal keyword tests and never fails, falling back
// to the latest order when nothing matches.
type KeywordSearch struct {
	ordersSvc *orders.Service

	now func() time.Time
}

func NewKeywordSearch(ordersSvc *orders.Service) *KeywordSearch {
	return &KeywordSearch{
		ordersSvc: ordersSvc,
		now:       time.Now,
	}
}

func (k *KeywordSearch) Search(query, userID string) SearchResult {
	lower := strings.ToLower(query)

	for _, day := range weekdays {
		if strings.Contains(lower, strings.ToLower(day)) {
			return k.searchByDay(day, userID)
		}
	}

	if strings.Contains(lower, "last week") || strings.Contains(lower, "week") {
		return k.searchLastWeek(userID)
	}

	if strings.Contains(lower, "latest") || strings.Contains(lower, "most recent") {
		return k.searchLatest(userID)
	}

	for _, keyword := range foodKeywords {
		if strings.Contains(lower, keyword) {
			return k.searchByFoodItem(keyword, userID)
		}
	}

	return k.searchLatest(userID)
}

func (k *KeywordSearch) searchByDay(day, userID string) SearchResult {
	matched := k.ordersSvc.ByDayOfWeek(day, userID)
	if len(matched) == 0 {
		return SearchResult{
			Found:   false,
			Message: fmt.Sprintf("No orders found for %s", day),
			Orders:  []orders.Order{},
		}
	}

	latest := matched[0]
	for _, o := range matched[1:] {
		if o.Date > latest.Date {
			latest = o
		}
	}

	return SearchResult{
		Found:             true,
		Message:           fmt.Sprintf("Found your %s order from %s", day, latest.Date),
		Orders:            []orders.Order{latest},
		FormattedResponse: formatOrder(latest),
	}
}

func (k *KeywordSearch) searchLastWeek(userID string) SearchResult {
	start, end := lastWeekRange(k.now())

	matched, err := k.ordersSvc.ByDateRange(start, end, userID)
	if err != nil {
		slog.Error("Last week range lookup failed", "error", err)
		matched = nil
	}

	if len(matched) == 0 {
		return SearchResult{
			Found:   false,
			Message: "No orders found from last week",
			Orders:  []orders.Order{},
		}
	}

	return SearchResult{
		Found:             true,
		Message:           fmt.Sprintf("Found %d orders from last week", len(matched)),
		Orders:            matched,
		FormattedResponse: formatOrders(matched),
	}
}

func (k *KeywordSearch) searchLatest(userID string) SearchResult {
	latest, ok := k.ordersSvc.Latest(userID)
	if !ok {
		return SearchResult{
			Found:   false,
			Message: "No orders found",
			Orders:  []orders.Order{},
		}
	}

	return SearchResult{
		Found:             true,
		Message:           fmt.Sprintf("Found your latest order from %s", latest.Date),
		Orders:            []orders.Order{latest},
		FormattedResponse: formatOrder(latest),
	}
}

func (k *KeywordSearch) searchByFoodItem(keyword, userID string) SearchResult {
	matched := k.ordersSvc.ByItemName(keyword, userID)
	if len(matched) == 0 {
		return SearchResult{
			Found:   false,
			Message: "No orders found for that food item",
			Orders:  []orders.Order{},
		}
	}

	return SearchResult{
		Found:             true,
		Message:           fmt.Sprintf("Found %d orders containing %s", len(matched), keyword),
		Orders:            matched,
		FormattedResponse: formatOrders(matched),
	}
}
