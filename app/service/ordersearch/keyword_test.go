package ordersearch

import (
	"path/filepath"
	"testing"
	"time"

	"echoeats/app/config"
	"echoeats/app/service/orders"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

func newTestOrders(t *testing.T, seed ...orders.Order) *orders.Service {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, &config.Config{
		Orders: config.Orders{
			Path:        filepath.Join(t.TempDir(), "orders.json"),
			DefaultUser: "user_darshan",
		},
	})
	do.Provide(di, orders.New)

	svc := do.MustInvoke[*orders.Service](di)
	for _, o := range seed {
		svc.Append(o)
	}

	return svc
}

func pizzaOrder() orders.Order {
	return orders.Order{
		ID:        "order_1",
		UserID:    "user_darshan",
		Date:      "2024-06-07",
		DayOfWeek: "Friday",
		Items: []orders.OrderItem{
			{Name: "Cheese Pizza", Quantity: 2, Price: 9.5, Category: "food"},
		},
		Total:      19.00,
		Restaurant: "Tony's Pizzeria",
	}
}

func TestKeywordLastFriday(t *testing.T) {
	k := NewKeywordSearch(newTestOrders(t, pizzaOrder()))

	result := k.Search("what did I order last friday", "user_darshan")

	require.True(t, result.Found)
	require.Len(t, result.Orders, 1)
	require.Equal(t,
		"On 2024-06-07 (Friday), you ordered: 2x Cheese Pizza. Total: $19.00",
		result.FormattedResponse)
}

func TestKeywordDayPicksMostRecent(t *testing.T) {
	older := pizzaOrder()
	older.ID = "order_old"
	older.Date = "2024-05-31"

	k := NewKeywordSearch(newTestOrders(t, older, pizzaOrder()))

	result := k.Search("friday", "user_darshan")

	require.True(t, result.Found)
	require.Len(t, result.Orders, 1)
	require.Equal(t, "order_1", result.Orders[0].ID)
}

func TestKeywordLatestEmptyStore(t *testing.T) {
	k := NewKeywordSearch(newTestOrders(t))

	result := k.Search("latest order", "user_darshan")

	require.False(t, result.Found)
	require.Empty(t, result.Orders)
	require.Equal(t, "No orders found", result.Message)
}

func TestKeywordLastWeek(t *testing.T) {
	// 2024-06-12 is a Wednesday, so last week is 2024-06-03 .. 2024-06-09
	inside := pizzaOrder()
	outside := pizzaOrder()
	outside.ID = "order_2"
	outside.Date = "2024-06-10"
	outside.DayOfWeek = "Monday"

	k := NewKeywordSearch(newTestOrders(t, inside, outside))
	k.now = func() time.Time {
		return time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	}

	result := k.Search("orders from last week", "user_darshan")

	require.True(t, result.Found)
	require.Len(t, result.Orders, 1)
	require.Equal(t, "order_1", result.Orders[0].ID)
	require.Equal(t, "Found 1 orders from last week", result.Message)
}

func TestKeywordFoodItem(t *testing.T) {
	k := NewKeywordSearch(newTestOrders(t, pizzaOrder()))

	result := k.Search("did I get a pizza recently?", "user_darshan")

	require.True(t, result.Found)
	require.Len(t, result.Orders, 1)
	require.Equal(t, "Found 1 orders containing pizza", result.Message)
}

func TestKeywordFallbackToLatest(t *testing.T) {
	k := NewKeywordSearch(newTestOrders(t, pizzaOrder()))

	result := k.Search("hmm what was that thing", "user_darshan")

	require.True(t, result.Found)
	require.Len(t, result.Orders, 1)
	require.Equal(t, "order_1", result.Orders[0].ID)
}

func TestKeywordDayBeatsFoodItem(t *testing.T) {
	k := NewKeywordSearch(newTestOrders(t, pizzaOrder()))

	result := k.Search("pizza from friday", "user_darshan")

	require.True(t, result.Found)
	require.Equal(t, "Found your Friday order from 2024-06-07", result.Message)
}
