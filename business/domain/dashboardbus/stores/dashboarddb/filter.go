package dashboarddb

import (
	"bytes"

	"github.com/panelkit/panelkit/business/domain/dashboardbus"
)

func applyFilter(filter dashboardbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["dashboard_id"] = *filter.ID
		wc = append(wc, "dashboard_id = :dashboard_id")
	}

	if filter.OwnerID != nil {
		data["owner_id"] = *filter.OwnerID
		wc = append(wc, "owner_id = :owner_id")
	}

	if filter.WorkspaceID != nil {
		data["workspace_id"] = *filter.WorkspaceID
		wc = append(wc, "workspace_id = :workspace_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name LIKE :name")
	}

	if filter.Visibility != nil {
		data["visibility"] = filter.Visibility.String()
		wc = append(wc, "visibility = :visibility")
	}

	for _, clause := range wc {
		buf.WriteString(" AND ")
		buf.WriteString(clause)
	}
}
