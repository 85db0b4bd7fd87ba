package dashboardbus

import "github.com/panelkit/panelkit/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "dashboard_id"
	OrderByName      = "name"
	OrderByCreatedAt = "created_at"
)
