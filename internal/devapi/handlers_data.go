package devapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/relocate/tui-go/internal/model"
)

// arizonaProperties handles GET /arizona-property
func (s *Server) arizonaProperties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.arizona)
}

// visaApplications handles GET /visa-application
func (s *Server) visaApplications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.visas)
}

// searchUKProperties handles POST /uk-property-search
func (s *Server) searchUKProperties(w http.ResponseWriter, r *http.Request) {
	var q model.PropertySearch
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &q); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
			return
		}
	}

	props := make([]model.UKProperty, 0, len(s.data.ukProperties))
	for _, p := range s.data.ukProperties {
		if matchesProperty(p, q) {
			props = append(props, p)
		}
	}
	writeJSON(w, http.StatusOK, model.PropertyResults{Properties: props, TotalCount: len(props)})
}

func matchesProperty(p model.UKProperty, q model.PropertySearch) bool {
	switch {
	case q.Region != "" && p.Region != q.Region:
		return false
	case q.PropertyType != "" && p.PropertyType != q.PropertyType:
		return false
	case q.MinPrice != nil && p.Price < *q.MinPrice:
		return false
	case q.MaxPrice != nil && p.Price > *q.MaxPrice:
		return false
	case q.MinBedrooms != nil && p.Bedrooms < *q.MinBedrooms:
		return false
	case q.MaxBedrooms != nil && p.Bedrooms > *q.MaxBedrooms:
		return false
	}
	return true
}

// remoteJobs handles GET /remote-jobs
func (s *Server) remoteJobs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	search := strings.ToLower(r.URL.Query().Get("search"))

	var matched []model.JobListing
	for _, j := range s.data.jobs {
		if search == "" ||
			strings.Contains(strings.ToLower(j.Title), search) ||
			strings.Contains(strings.ToLower(j.Company), search) ||
			strings.Contains(strings.ToLower(j.Description), search) {
			matched = append(matched, j)
		}
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	jobs := slices.Clone(matched[start:end])
	if jobs == nil {
		jobs = []model.JobListing{}
	}

	writeJSON(w, http.StatusOK, model.JobPage{Jobs: jobs, Total: len(matched), Page: page})
}

// chromeExtensions handles GET /chrome-extensions
func (s *Server) chromeExtensions(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" {
		if _, ok := model.ExtensionCategories[category]; !ok {
			writeError(w, http.StatusUnprocessableEntity, "unknown category: "+category)
			return
		}
	}

	exts := make([]model.ChromeExtension, 0, len(s.data.extensions))
	for _, e := range s.data.extensions {
		if category == "" || e.Category == category {
			exts = append(exts, e)
		}
	}
	writeJSON(w, http.StatusOK, exts)
}

// extensionCategories handles GET /chrome-extensions/categories
func (s *Server) extensionCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ExtensionCategories)
}

// timeline handles GET /timeline/{user_id}
func (s *Server) timeline(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	out := []model.Milestone{}
	for _, m := range s.data.milestones {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Milestone) int {
		return strings.Compare(a.TargetDate, b.TargetDate)
	})
	writeJSON(w, http.StatusOK, out)
}

// financialSummary handles GET /financial-summary/{user_id}
func (s *Server) financialSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	summary := model.FinancialSummary{ByCategory: map[string]model.CategoryTotal{}}
	for _, rec := range s.data.spending {
		if rec.userID != userID {
			continue
		}
		summary.TotalSpentUSD += rec.usd
		summary.TotalSpentGBP += rec.gbp

		cat := rec.category
		if cat == "" {
			cat = "other"
		}
		t := summary.ByCategory[cat]
		t.USD += rec.usd
		t.GBP += rec.gbp
		t.Count++
		summary.ByCategory[cat] = t
	}
	writeJSON(w, http.StatusOK, summary)
}
