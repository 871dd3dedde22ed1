package orders

type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Date       string      `json:"date"`
	DayOfWeek  string      `json:"day_of_week"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	Restaurant string      `json:"restaurant"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type orderFile struct {
	Orders []Order `json:"orders"`
}
