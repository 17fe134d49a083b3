package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/relocate/tui-go/internal/model"
)

// JobQuery pages through remote job listings
type JobQuery struct {
	Page   int
	Limit  int
	Search string
}

// ArizonaProperties lists the tracked Arizona properties
func (c *Client) ArizonaProperties(ctx context.Context) ([]model.ArizonaProperty, error) {
	var out []model.ArizonaProperty
	if err := c.get(ctx, "/arizona-property", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VisaApplications lists UK visa applications
func (c *Client) VisaApplications(ctx context.Context) ([]model.VisaApplication, error) {
	var out []model.VisaApplication
	if err := c.get(ctx, "/visa-application", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchUKProperties runs a property search with the given filters
func (c *Client) SearchUKProperties(ctx context.Context, q model.PropertySearch) (*model.PropertyResults, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var out model.PropertyResults
	req.SetBody(q).SetResult(&out)
	if err := c.execute(req, http.MethodPost, "/uk-property-search"); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoteJobs fetches one page of remote-friendly job listings
func (c *Client) RemoteJobs(ctx context.Context, q JobQuery) (*model.JobPage, error) {
	var out model.JobPage
	err := c.get(ctx, "/remote-jobs", func(r *resty.Request) {
		if q.Page > 0 {
			r.SetQueryParam("page", strconv.Itoa(q.Page))
		}
		if q.Limit > 0 {
			r.SetQueryParam("limit", strconv.Itoa(q.Limit))
		}
		if q.Search != "" {
			r.SetQueryParam("search", q.Search)
		}
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChromeExtensions lists curated extensions, optionally filtered by category
func (c *Client) ChromeExtensions(ctx context.Context, category string) ([]model.ChromeExtension, error) {
	var out []model.ChromeExtension
	err := c.get(ctx, "/chrome-extensions", func(r *resty.Request) {
		if category != "" {
			r.SetQueryParam("category", category)
		}
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExtensionCategories returns category keys mapped to display names
func (c *Client) ExtensionCategories(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if err := c.get(ctx, "/chrome-extensions/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Timeline returns the user's milestones ordered by target date. Requires
// an authenticated session.
func (c *Client) Timeline(ctx context.Context, userID string) ([]model.Milestone, error) {
	var out []model.Milestone
	if err := c.get(ctx, "/timeline/{user_id}", withUser(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FinancialSummary totals the user's relocation spend. Requires an
// authenticated session.
func (c *Client) FinancialSummary(ctx context.Context, userID string) (*model.FinancialSummary, error) {
	var out model.FinancialSummary
	if err := c.get(ctx, "/financial-summary/{user_id}", withUser(userID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withUser(userID string) func(*resty.Request) {
	return func(r *resty.Request) { r.SetPathParam("user_id", userID) }
}

func (c *Client) get(ctx context.Context, path string, setup func(*resty.Request), result any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	if setup != nil {
		setup(req)
	}
	req.SetResult(result)
	return c.execute(req, http.MethodGet, path)
}
