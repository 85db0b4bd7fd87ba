package dashboarddb

import (
	"fmt"

	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/sdk/order"
)

var orderByFields = map[string]string{
	dashboardbus.OrderByID:        "dashboard_id",
	dashboardbus.OrderByName:      "name",
	dashboardbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
