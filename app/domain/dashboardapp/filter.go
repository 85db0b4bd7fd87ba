package dashboardapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/types/name"
	"github.com/panelkit/panelkit/business/types/visibility"
)

type queryParams struct {
	Page        string
	Rows        string
	OrderBy     string
	ID          string
	OwnerID     string
	WorkspaceID string
	Name        string
	Visibility  string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:        values.Get("page"),
		Rows:        values.Get("rows"),
		OrderBy:     values.Get("orderBy"),
		ID:          values.Get("dashboard_id"),
		OwnerID:     values.Get("owner_id"),
		WorkspaceID: values.Get("workspace_id"),
		Name:        values.Get("name"),
		Visibility:  values.Get("visibility"),
	}
}

func parseFilter(qp queryParams) (dashboardbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter dashboardbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("dashboard_id", err)
		}
	}

	if qp.OwnerID != "" {
		id, err := uuid.Parse(qp.OwnerID)
		switch err {
		case nil:
			filter.OwnerID = &id
		default:
			fieldErrors.Add("owner_id", err)
		}
	}

	if qp.WorkspaceID != "" {
		id, err := uuid.Parse(qp.WorkspaceID)
		switch err {
		case nil:
			filter.WorkspaceID = &id
		default:
			fieldErrors.Add("workspace_id", err)
		}
	}

	if qp.Name != "" {
		nme, err := name.Parse(qp.Name)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if qp.Visibility != "" {
		vis, err := visibility.Parse(qp.Visibility)
		switch err {
		case nil:
			filter.Visibility = &vis
		default:
			fieldErrors.Add("visibility", err)
		}
	}

	if fieldErrors != nil {
		return dashboardbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
