package ordersearch

import (
	"fmt"
	"strings"

	"echoeats/app/service/orders"
)

func formatItems(items []orders.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}

	return strings.Join(parts, ", ")
}

func formatOrder(order orders.Order) string {
	return fmt.Sprintf("On %s (%s), you ordered: %s. Total: $%.2f",
		order.Date, order.DayOfWeek, formatItems(order.Items), order.Total)
}

// formatOrders summarizes a result set: a count line plus the last three
// entries in result order.
func formatOrders(list []orders.Order) string {
	if len(list) == 1 {
		return formatOrder(list[0])
	}

	tail := list
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d orders:\n", len(list)))

	for _, order := range tail {
		builder.WriteString(fmt.Sprintf("• %s (%s): %s - $%.2f\n",
			order.Date, order.DayOfWeek, formatItems(order.Items), order.Total))
	}

	return strings.TrimSpace(builder.String())
}
