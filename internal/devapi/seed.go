package devapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/relocate/tui-go/internal/model"
)

type spendRecord struct {
	userID   string
	category string
	usd      float64
	gbp      float64
}

type dataset struct {
	arizona      []model.ArizonaProperty
	visas        []model.VisaApplication
	ukProperties []model.UKProperty
	jobs         []model.JobListing
	extensions   []model.ChromeExtension
	milestones   []model.Milestone
	spending     []spendRecord
}

func ptr[T any](v T) *T { return &v }

// valuation estimates a Phoenix property value from its floor area
func valuation(squareFeet int, propertyType string) float64 {
	value := float64(squareFeet) * 165
	switch propertyType {
	case "single_family":
		value *= 1.1
	case "condo":
		value *= 0.9
	}
	return value
}

func seed(userID string, now time.Time) *dataset {
	day := func(n int) string { return now.AddDate(0, 0, n).Format(time.DateOnly) }

	return &dataset{
		arizona: []model.ArizonaProperty{
			{
				ID: uuid.NewString(), Address: "4821 E Camelback Rd", City: "Phoenix", State: "AZ",
				ZipCode: "85018", PropertyType: "single_family", SquareFeet: 2150, Bedrooms: 4,
				Bathrooms: 2.5, YearBuilt: 2004, EstimatedValue: ptr(valuation(2150, "single_family")),
				Status: "preparing", Notes: "Repaint and replace roof tiles before listing",
			},
		},
		visas: []model.VisaApplication{
			{
				ID: uuid.NewString(), VisaType: "spouse_partner", ApplicantName: "Arizona Relocator",
				Status: string(model.VisaPreparing), EstimatedCost: ptr(3250.0),
				Notes: "English test booked; gathering relationship evidence",
			},
		},
		ukProperties: []model.UKProperty{
			{
				ID: uuid.NewString(), Title: "Modern 3-bedroom house in London",
				Address: "123 Sample Street, London", City: "London", Region: "london",
				Postcode: "SE10 8XJ", PropertyType: "terraced", Price: 650000, Bedrooms: 3, Bathrooms: 2,
			},
			{
				ID: uuid.NewString(), Title: "Charming cottage in the Cotswolds",
				Address: "456 Village Lane, Chipping Norton", City: "Chipping Norton", Region: "south_west",
				Postcode: "OX7 5AA", PropertyType: "detached", Price: 485000, Bedrooms: 2, Bathrooms: 1,
			},
			{
				ID: uuid.NewString(), Title: "Stone farmhouse near Bakewell",
				Address: "2 Moor Lane, Bakewell", City: "Bakewell", Region: "midlands",
				Postcode: "DE45 1AB", PropertyType: "detached", Price: 575000, Bedrooms: 4, Bathrooms: 2,
			},
		},
		jobs: []model.JobListing{
			{
				ID: uuid.NewString(), Title: "Senior Software Engineer", Company: "TechCorp UK",
				Location: "Remote (UK)", JobType: "remote", SalaryRange: "£60,000 - £80,000",
				Description: "Join our remote team building cutting-edge applications",
				SourceURL: "https://example.com/job1", RemoteFriendly: true,
			},
			{
				ID: uuid.NewString(), Title: "Product Manager", Company: "Innovation Ltd",
				Location: "London (Remote OK)", JobType: "full_time", SalaryRange: "£70,000 - £90,000",
				Description: "Lead product development for our growing platform",
				SourceURL: "https://example.com/job2", RemoteFriendly: true,
			},
			{
				ID: uuid.NewString(), Title: "Site Reliability Engineer", Company: "Northern Cloud",
				Location: "Manchester (Hybrid)", JobType: "contract", SalaryRange: "£550/day",
				Description: "Keep our hosting platform fast and available",
				SourceURL: "https://example.com/job3", RemoteFriendly: true,
			},
		},
		extensions: []model.ChromeExtension{
			{
				ID: uuid.NewString(), Name: "Rightmove Property Search",
				Description: "Enhanced property search on Rightmove with advanced filters",
				Category:    "property_search", ChromeStoreURL: "https://chrome.google.com/webstore/detail/rightmove-enhancer/abcd1234",
				Rating: ptr(4.5), UserCount: "10,000+", Features: []string{"Advanced filters", "Price alerts", "Map integration"},
			},
			{
				ID: uuid.NewString(), Name: "LinkedIn Job Search Pro",
				Description: "Advanced job search tools for LinkedIn with UK visa sponsorship filters",
				Category:    "job_search", ChromeStoreURL: "https://chrome.google.com/webstore/detail/linkedin-job-pro/efgh5678",
				Rating: ptr(4.7), UserCount: "50,000+", Features: []string{"Visa sponsorship filter", "Salary insights", "Application tracking"},
			},
			{
				ID: uuid.NewString(), Name: "UK Visa Tracker",
				Description: "Track your UK visa application status and deadlines",
				Category:    "immigration", ChromeStoreURL: "https://chrome.google.com/webstore/detail/uk-visa-tracker/ijkl9012",
				Rating: ptr(4.3), UserCount: "5,000+", Features: []string{"Application tracking", "Deadline reminders", "Document checklist"},
			},
			{
				ID: uuid.NewString(), Name: "Relocation Checklist Manager",
				Description: "Comprehensive checklist manager for international relocation",
				Category:    "relocation", ChromeStoreURL: "https://chrome.google.com/webstore/detail/relocation-checklist/uvwx1234",
				Rating: ptr(4.6), UserCount: "15,000+", Features: []string{"Customizable checklists", "Progress tracking", "Deadline management"},
			},
		},
		milestones: []model.Milestone{
			{
				ID: uuid.NewString(), UserID: userID, Phase: "year_1",
				Title:       "Marriage & Relationship Documentation",
				Description: "Ensure marriage is legally recognized and gather evidence",
				TargetDate:  day(180), Priority: "high", Category: "visa",
				Tasks: []string{"Obtain certified marriage certificate", "Gather relationship evidence", "Prepare joint financial statements"},
			},
			{
				ID: uuid.NewString(), UserID: userID, Phase: "year_1",
				Title:       "Property Preparation & Market Research",
				Description: "Prepare Arizona house for sale and research UK property market",
				TargetDate:  day(90), Priority: "high", Category: "property",
				Tasks: []string{"Get professional property valuation", "Complete home improvements", "Research Peak District market"},
			},
			{
				ID: uuid.NewString(), UserID: userID, Phase: "year_1",
				Title:       "Open UK bank account",
				Description: "Set up banking ahead of the move",
				TargetDate:  day(-30), Completed: true, Priority: "medium", Category: "finance",
				Tasks: []string{"Choose bank", "Submit application"},
			},
		},
		spending: []spendRecord{
			{userID: userID, category: "visa", usd: 1846, gbp: 1450},
			{userID: userID, category: "visa", usd: 1400, gbp: 1100},
			{userID: userID, category: "property", usd: 650, gbp: 510},
			{userID: userID, usd: 120, gbp: 95},
		},
	}
}
