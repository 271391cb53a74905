package models

// ComplaintCategories is the fixed list of complaint categories exposed to
// clients. Order matters for the API response.
var ComplaintCategories = []string{
	"Theft/Burglary",
	"Assault/Violence",
	"Vandalism/Property Damage",
	"Fraud/Scam",
	"Drug-related",
	"Traffic Violation",
	"Cybercrime",
	"Domestic Violence",
	"Public Disturbance",
	"Other",
}

// CrimeTypesByCategory maps each category to its officer-assignable crime
// subtypes. A crime type is finalized on a complaint at approval time.
var CrimeTypesByCategory = map[string][]string{
	"Theft/Burglary":            {"Petty Theft", "Grand Theft", "Burglary", "Robbery", "Shoplifting"},
	"Assault/Violence":          {"Simple Assault", "Aggravated Assault", "Battery", "Domestic Violence"},
	"Vandalism/Property Damage": {"Graffiti", "Property Destruction", "Trespassing"},
	"Fraud/Scam":                {"Identity Theft", "Credit Card Fraud", "Online Scam", "Check Fraud"},
	"Drug-related":              {"Possession", "Distribution", "Manufacturing", "Public Intoxication"},
	"Traffic Violation":         {"Reckless Driving", "DUI", "Hit and Run", "Speeding"},
	"Cybercrime":                {"Hacking", "Online Harassment", "Data Breach", "Phishing"},
	"Domestic Violence":         {"Physical Abuse", "Emotional Abuse", "Stalking", "Harassment"},
	"Public Disturbance":        {"Noise Complaint", "Public Intoxication", "Disorderly Conduct"},
	"Other":                     {"Other Crime"},
}

// IsValidCategory checks membership in the fixed category list
func IsValidCategory(category string) bool {
	_, ok := CrimeTypesByCategory[category]
	return ok
}
