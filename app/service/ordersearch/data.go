package ordersearch

import "echoeats/app/service/orders"

type SearchResult struct {
	Found             bool           `json:"found"`
	Message           string         `json:"message"`
	Orders            []orders.Order `json:"orders"`
	FormattedResponse string         `json:"formatted_response,omitempty"`
}

// QueryParams is the structured query the generator model must produce.
// Exactly one filter dimension is honored per query.
type QueryParams struct {
	UserID     string `json:"user_id"`
	Date       string `json:"date,omitempty"`
	DayOfWeek  string `json:"day_of_week,omitempty"`
	FoodItem   string `json:"food_item,omitempty"`
	TimePeriod string `json:"time_period,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

const (
	periodLatest   = "latest"
	periodLastWeek = "last_week"
)
