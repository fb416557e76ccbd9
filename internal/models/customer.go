package models

// Customer is an advertiser profile. Defaults feed the generation context
// whenever a build request leaves offer/audience/landing blank.
type Customer struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Industry          string `json:"industry"`
	Tier              string `json:"tier"`
	Website           string `json:"website"`
	Location          string `json:"location"`
	DefaultOffer      string `json:"defaultOffer"`
	DefaultAudience   string `json:"defaultAudience"`
	DefaultLandingURL string `json:"defaultLandingUrl"`
	CustomerNotes     string `json:"customerNotes"`
}

// NormalizeCustomer rebuilds a customer with safe defaults for missing fields.
func NormalizeCustomer(c Customer, fallbackID string) Customer {
	id := CleanText(c.ID)
	if id == "" {
		id = fallbackID
	}
	if id == "" {
		id = NewID("cust")
	}
	name := CleanText(c.Name)
	if name == "" {
		name = "Customer"
	}
	industry := CleanText(c.Industry)
	if industry == "" {
		industry = "Unknown"
	}
	tier := CleanText(c.Tier)
	if tier == "" {
		tier = "Core"
	}
	return Customer{
		ID:                id,
		Name:              name,
		Industry:          industry,
		Tier:              tier,
		Website:           CleanText(c.Website),
		Location:          CleanText(c.Location),
		DefaultOffer:      CleanText(c.DefaultOffer),
		DefaultAudience:   CleanText(c.DefaultAudience),
		DefaultLandingURL: CleanText(c.DefaultLandingURL),
		CustomerNotes:     CleanText(c.CustomerNotes),
	}
}

// Asset is a stored marketing artifact (VSL, landing copy, testimonial reel)
// owned by one customer.
type Asset struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Notes      string `json:"notes"`
}
