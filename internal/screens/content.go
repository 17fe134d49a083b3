package screens

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/relocate/tui-go/internal/api"
	"github.com/relocate/tui-go/internal/model"
	"github.com/relocate/tui-go/internal/views"
)

func dashboard(ctx context.Context, src Source, reg *views.Registry) (Content, error) {
	c := Content{}

	h, err := src.Health(ctx)
	if err != nil {
		c.Summary = "API unreachable: " + err.Error()
	} else {
		c.Summary = fmt.Sprintf("API %s · %s", h.Status, h.Timestamp.Local().Format("02 Jan 15:04"))
	}

	for _, d := range reg.All() {
		if d.ID == views.DefaultViewID {
			continue
		}
		c.Rows = append(c.Rows, Row{Primary: d.Title, Secondary: d.Description})
	}
	return c, nil
}

func arizona(ctx context.Context, src Source) (Content, error) {
	props, err := src.ArizonaProperties(ctx)
	if err != nil {
		return Content{}, err
	}

	c := Content{Summary: plural(len(props), "property", "properties") + " tracked"}
	for _, p := range props {
		value := "not valued"
		if p.EstimatedValue != nil {
			value = "est. " + money("$", *p.EstimatedValue)
		}
		c.Rows = append(c.Rows, Row{
			Primary: fmt.Sprintf("%s, %s %s", p.Address, p.City, p.ZipCode),
			Secondary: fmt.Sprintf("%s · %d bd / %.1f ba · %s · %s",
				humanize(p.PropertyType), p.Bedrooms, p.Bathrooms, value, humanize(p.Status)),
		})
	}
	return c, nil
}

func visa(ctx context.Context, src Source) (Content, error) {
	apps, err := src.VisaApplications(ctx)
	if err != nil {
		return Content{}, err
	}

	c := Content{Summary: plural(len(apps), "application", "applications")}
	for _, a := range apps {
		status := model.VisaStatus(a.Status)
		secondary := humanize(a.Status)
		if a.EstimatedCost != nil {
			secondary += " · " + money("£", *a.EstimatedCost)
		}
		c.Rows = append(c.Rows, Row{
			Primary:   fmt.Sprintf("%s %s: %s", status.StatusIcon(), humanize(a.VisaType), a.ApplicantName),
			Secondary: secondary,
		})
	}
	return c, nil
}

func ukProperty(ctx context.Context, src Source) (Content, error) {
	res, err := src.SearchUKProperties(ctx, model.PropertySearch{})
	if err != nil {
		return Content{}, err
	}

	c := Content{Summary: plural(res.TotalCount, "property", "properties") + " found"}
	for _, p := range res.Properties {
		c.Rows = append(c.Rows, Row{
			Primary: fmt.Sprintf("%s · %s", p.Title, money("£", p.Price)),
			Secondary: fmt.Sprintf("%s · %s · %d bd / %d ba · %s",
				p.Address, humanize(p.Region), p.Bedrooms, p.Bathrooms, humanize(p.PropertyType)),
		})
	}
	return c, nil
}

func workSearch(ctx context.Context, src Source) (Content, error) {
	page, err := src.RemoteJobs(ctx, api.JobQuery{Page: 1, Limit: 20})
	if err != nil {
		return Content{}, err
	}

	c := Content{Summary: plural(page.Total, "job", "jobs")}
	for _, j := range page.Jobs {
		secondary := j.Location
		if j.SalaryRange != "" {
			secondary += " · " + j.SalaryRange
		}
		c.Rows = append(c.Rows, Row{
			Primary:   fmt.Sprintf("%s at %s", j.Title, j.Company),
			Secondary: secondary,
		})
	}
	return c, nil
}

func extensions(ctx context.Context, src Source) (Content, error) {
	exts, err := src.ChromeExtensions(ctx, "")
	if err != nil {
		return Content{}, err
	}
	cats, err := src.ExtensionCategories(ctx)
	if err != nil {
		return Content{}, err
	}

	c := Content{Summary: plural(len(exts), "extension", "extensions") + " in " +
		plural(len(cats), "category", "categories")}

	byCategory := make(map[string][]model.ChromeExtension)
	for _, e := range exts {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}
	for _, key := range slices.Sorted(maps.Keys(byCategory)) {
		name := cats[key]
		if name == "" {
			name = humanize(key)
		}
		for _, e := range byCategory[key] {
			rating := ""
			if e.Rating != nil {
				rating = fmt.Sprintf(" · ★ %.1f", *e.Rating)
			}
			c.Rows = append(c.Rows, Row{
				Primary:   fmt.Sprintf("%s (%s)", e.Name, name),
				Secondary: e.Description + rating,
			})
		}
	}
	return c, nil
}

func timeline(ctx context.Context, src Source, userID string) (Content, error) {
	ms, err := src.Timeline(ctx, userID)
	if err != nil {
		return Content{}, err
	}

	done := 0
	c := Content{}
	for _, m := range ms {
		if m.Completed {
			done++
		}
		secondary := fmt.Sprintf("%s · %s · %s priority", m.TargetDate, humanize(m.Phase), m.Priority)
		if len(m.Tasks) > 0 {
			secondary += " · " + strings.Join(m.Tasks, "; ")
		}
		c.Rows = append(c.Rows, Row{
			Primary:   fmt.Sprintf("%s %s", m.Icon(), m.Title),
			Secondary: secondary,
		})
	}
	c.Summary = fmt.Sprintf("%d of %s complete", done, plural(len(ms), "milestone", "milestones"))
	return c, nil
}

func financial(ctx context.Context, src Source, userID string) (Content, error) {
	sum, err := src.FinancialSummary(ctx, userID)
	if err != nil {
		return Content{}, err
	}

	c := Content{
		Summary: fmt.Sprintf("Spent %s (%s)", money("$", sum.TotalSpentUSD), money("£", sum.TotalSpentGBP)),
	}
	for _, cat := range slices.Sorted(maps.Keys(sum.ByCategory)) {
		t := sum.ByCategory[cat]
		c.Rows = append(c.Rows, Row{
			Primary:   humanize(cat),
			Secondary: fmt.Sprintf("%s / %s · %s", money("$", t.USD), money("£", t.GBP), plural(t.Count, "record", "records")),
		})
	}
	return c, nil
}
