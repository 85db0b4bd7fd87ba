package dashboardapp

import "github.com/panelkit/panelkit/business/domain/dashboardbus"

var orderByFields = map[string]string{
	"dashboard_id": dashboardbus.OrderByID,
	"name":         dashboardbus.OrderByName,
	"created_at":   dashboardbus.OrderByCreatedAt,
}
