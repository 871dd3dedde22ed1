package ordersearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"echoeats/app/service/orders"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

// fakeModel serves an OpenAI-compatible chat completions endpoint that
// always answers with the given content.
func fakeModel(t *testing.T, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%s}}]}`,
			mustJSON(content))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func testClient(srv *httptest.Server) *openai.Client {
	clientConfig := openai.DefaultConfig("test-token")
	clientConfig.BaseURL = srv.URL + "/v1"

	return openai.NewClientWithConfig(clientConfig)
}

func newTestGenerator(t *testing.T, srv *httptest.Server, ordersSvc *orders.Service) *Generator {
	t.Helper()

	return NewGenerator(ordersSvc, testClient(srv), "test-model")
}

func TestGenerateParams(t *testing.T) {
	srv := fakeModel(t, `{"user_id": "user_darshan", "day_of_week": "Friday", "limit": 1}`)
	g := newTestGenerator(t, srv, newTestOrders(t))

	params, err := g.GenerateParams(context.Background(), "last friday", "user_darshan")
	require.NoError(t, err)
	require.Equal(t, "Friday", params.DayOfWeek)
	require.Equal(t, "user_darshan", params.UserID)
	require.Equal(t, 1, params.Limit)
}

func TestGenerateParamsFillsDefaults(t *testing.T) {
	srv := fakeModel(t, `{"time_period": "latest"}`)
	g := newTestGenerator(t, srv, newTestOrders(t))

	params, err := g.GenerateParams(context.Background(), "latest order", "user_darshan")
	require.NoError(t, err)
	require.Equal(t, "user_darshan", params.UserID)
	require.Equal(t, 1, params.Limit)
}

func TestGenerateParamsStripsCodeFence(t *testing.T) {
	srv := fakeModel(t, "```json\n{\"food_item\": \"pizza\", \"limit\": 5}\n```")
	g := newTestGenerator(t, srv, newTestOrders(t))

	params, err := g.GenerateParams(context.Background(), "pizza orders", "user_darshan")
	require.NoError(t, err)
	require.Equal(t, "pizza", params.FoodItem)
	require.Equal(t, 5, params.Limit)
}

func TestGenerateParamsMalformedJSONIsHardError(t *testing.T) {
	srv := fakeModel(t, "sorry, I cannot help with that")
	g := newTestGenerator(t, srv, newTestOrders(t))

	_, err := g.GenerateParams(context.Background(), "last friday", "user_darshan")
	require.Error(t, err)
}

func TestGenerateParamsWithoutClientIsHardError(t *testing.T) {
	g := NewGenerator(newTestOrders(t), nil, "")

	_, err := g.GenerateParams(context.Background(), "last friday", "user_darshan")
	require.Error(t, err)
}

func TestExecuteDayOfWeekBeatsOtherFilters(t *testing.T) {
	friday := pizzaOrder()
	saturday := pizzaOrder()
	saturday.ID = "order_2"
	saturday.Date = "2024-06-08"
	saturday.DayOfWeek = "Saturday"
	saturday.Items = []orders.OrderItem{{Name: "Double Burger", Quantity: 1, Price: 11.0, Category: "food"}}

	g := NewGenerator(newTestOrders(t, friday, saturday), nil, "")

	results, err := g.Execute(QueryParams{
		UserID:    "user_darshan",
		DayOfWeek: "Saturday",
		FoodItem:  "pizza",
		Limit:     5,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "order_2", results[0].ID)
}

func TestExecuteLimitAndDedup(t *testing.T) {
	// Two matching pizza items in one order must not duplicate it
	double := pizzaOrder()
	double.Items = append(double.Items,
		orders.OrderItem{Name: "Pepperoni Pizza", Quantity: 1, Price: 12.0, Category: "food"})

	second := pizzaOrder()
	second.ID = "order_2"
	second.Date = "2024-06-14"

	third := pizzaOrder()
	third.ID = "order_3"
	third.Date = "2024-06-21"

	g := NewGenerator(newTestOrders(t, double, second, third), nil, "")

	results, err := g.Execute(QueryParams{
		UserID:   "user_darshan",
		FoodItem: "pizza",
		Limit:    2,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NotEqual(t, results[0].ID, results[1].ID)
}

func TestExecuteEmptyParamsFallsBackToLatest(t *testing.T) {
	g := NewGenerator(newTestOrders(t, pizzaOrder()), nil, "")

	results, err := g.Execute(QueryParams{UserID: "user_darshan", Limit: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "order_1", results[0].ID)
}

func TestExecuteUnknownTimePeriod(t *testing.T) {
	g := NewGenerator(newTestOrders(t), nil, "")

	_, err := g.Execute(QueryParams{UserID: "user_darshan", TimePeriod: "last_month", Limit: 1})
	require.Error(t, err)
}

func TestSearchFormatsSingleResult(t *testing.T) {
	srv := fakeModel(t, `{"user_id": "user_darshan", "time_period": "latest", "limit": 1}`)
	g := newTestGenerator(t, srv, newTestOrders(t, pizzaOrder()))

	response, err := g.Search(context.Background(), "latest order", "user_darshan")
	require.NoError(t, err)
	require.Equal(t,
		"On 2024-06-07 (Friday), you ordered: 2x Cheese Pizza. Total: $19.00",
		response)
}

func TestSearchNoMatches(t *testing.T) {
	srv := fakeModel(t, `{"user_id": "user_darshan", "food_item": "sushi", "limit": 5}`)
	g := newTestGenerator(t, srv, newTestOrders(t, pizzaOrder()))

	response, err := g.Search(context.Background(), "sushi orders", "user_darshan")
	require.NoError(t, err)
	require.Equal(t, "No orders found matching your criteria.", response)
}
