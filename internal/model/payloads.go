package model

import "time"

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the body returned by a successful login
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// PasswordReset is the body of POST /forgot-password
type PasswordReset struct {
	Email                string `json:"email"`
	FullName             string `json:"full_name"`
	VerificationQuestion string `json:"verification_question"`
	NewPassword          string `json:"new_password"`
}

// ResetResult is returned when a password reset is accepted
type ResetResult struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"email_sent"`
}

// Health is the body of GET /health
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ArizonaProperty is the house being sold before the move
type ArizonaProperty struct {
	ID             string   `json:"id"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zip_code"`
	PropertyType   string   `json:"property_type"`
	SquareFeet     int      `json:"square_feet"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      float64  `json:"bathrooms"`
	YearBuilt      int      `json:"year_built"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	AskingPrice    *float64 `json:"asking_price,omitempty"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes,omitempty"`
}

// VisaApplication tracks one UK visa application
type VisaApplication struct {
	ID            string   `json:"id"`
	VisaType      string   `json:"visa_type"`
	ApplicantName string   `json:"applicant_name"`
	Status        string   `json:"status"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// UKProperty is a search result from POST /uk-property-search
type UKProperty struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Region       string  `json:"region"`
	Postcode     string  `json:"postcode"`
	PropertyType string  `json:"property_type"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
}

// PropertySearch filters a UK property search. Zero values mean "any".
type PropertySearch struct {
	Region       string   `json:"region,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinBedrooms  *int     `json:"min_bedrooms,omitempty"`
	MaxBedrooms  *int     `json:"max_bedrooms,omitempty"`
}

// PropertyResults wraps the UK property search response
type PropertyResults struct {
	Properties []UKProperty `json:"properties"`
	TotalCount int          `json:"total_count"`
}

// JobListing is a remote job posting
type JobListing struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	JobType        string `json:"job_type"`
	SalaryRange    string `json:"salary_range,omitempty"`
	Description    string `json:"description"`
	SourceURL      string `json:"source_url"`
	RemoteFriendly bool   `json:"remote_friendly"`
}

// JobPage is one page of GET /remote-jobs
type JobPage struct {
	Jobs  []JobListing `json:"jobs"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
}

// ChromeExtension is a curated browser extension
type ChromeExtension struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	ChromeStoreURL string   `json:"chrome_store_url"`
	Rating         *float64 `json:"rating,omitempty"`
	UserCount      string   `json:"user_count,omitempty"`
	Features       []string `json:"features"`
}

// Milestone is one entry of the relocation timeline
type Milestone struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Phase       string   `json:"phase"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TargetDate  string   `json:"target_date"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	Tasks       []string `json:"tasks"`
}

// CategoryTotal is one row of the financial summary
type CategoryTotal struct {
	USD   float64 `json:"usd"`
	GBP   float64 `json:"gbp"`
	Count int     `json:"count"`
}

// FinancialSummary is the body of GET /financial-summary/{user_id}
type FinancialSummary struct {
	TotalSpentUSD float64                  `json:"total_spent_usd"`
	TotalSpentGBP float64                  `json:"total_spent_gbp"`
	ByCategory    map[string]CategoryTotal `json:"by_category"`
}

// ErrorBody is the JSON error envelope used by the API
type ErrorBody struct {
	Detail string `json:"detail"`
}
