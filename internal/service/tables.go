package service

import (
	"github.com/plantdoc/backend/internal/domain"
)

// Care advice when no provider assessed the plant's health
var (
	unassessedSymptoms   = []string{"Visual symptoms detected", "Requires further analysis"}
	unassessedTreatments = []string{"Consult with agricultural expert", "Monitor plant health"}
	unassessedPrevention = []string{"Regular monitoring", "Proper plant care"}
)

// Care advice for a reported condition that matches no profile
var (
	genericSymptoms   = []string{"Visual symptoms detected", "Requires expert analysis"}
	genericTreatments = []string{"Consult agricultural expert", "Monitor plant health", "Implement preventive measures"}
	genericPrevention = []string{"Regular monitoring", "Proper plant care", "Good cultural practices"}
)

var unknownPathogen = domain.PathogenInfo{
	Species:           "Unknown",
	Strain:            "Unknown",
	MatingType:        "Unknown",
	ResistanceProfile: "Unknown",
}

type efficacyRule struct {
	key      string
	efficacy domain.TreatmentEfficacy
}

var efficacyRules = []efficacyRule{
	{"blight", domain.TreatmentEfficacy{CopperBasedFungicide: 95, BiologicalControl: 87, CulturalPractices: 78, PreventionMeasures: 92}},
	{"mildew", domain.TreatmentEfficacy{CopperBasedFungicide: 75, BiologicalControl: 82, CulturalPractices: 85, PreventionMeasures: 88}},
	{"rot", domain.TreatmentEfficacy{CopperBasedFungicide: 65, BiologicalControl: 78, CulturalPractices: 85, PreventionMeasures: 90}},
}

var defaultEfficacy = domain.TreatmentEfficacy{CopperBasedFungicide: 80, BiologicalControl: 75, CulturalPractices: 70, PreventionMeasures: 85}

type epidemiologyRule struct {
	key          string
	epidemiology domain.Epidemiology
}

var epidemiologyRules = []epidemiologyRule{
	{"blight", domain.Epidemiology{
		FirstReported:    1892,
		GlobalCases:      "2.3M/year",
		SeasonalPeak:     "Spring",
		GeographicSpread: "Worldwide",
		RegionalPrevalence: domain.RegionalPrevalence{
			SoutheastAsia: "High Risk",
			NorthAmerica:  "Moderate Risk",
			Europe:        "Low Risk",
		},
	}},
	{"mildew", domain.Epidemiology{
		FirstReported:    1851,
		GlobalCases:      "1.8M/year",
		SeasonalPeak:     "Summer",
		GeographicSpread: "Temperate regions",
		RegionalPrevalence: domain.RegionalPrevalence{
			SoutheastAsia: "Moderate Risk",
			NorthAmerica:  "High Risk",
			Europe:        "High Risk",
		},
	}},
}

var defaultEpidemiology = domain.Epidemiology{
	FirstReported:    1880,
	GlobalCases:      "1.5M/year",
	SeasonalPeak:     "Year-round",
	GeographicSpread: "Worldwide",
	RegionalPrevalence: domain.RegionalPrevalence{
		SoutheastAsia: "Moderate Risk",
		NorthAmerica:  "Moderate Risk",
		Europe:        "Moderate Risk",
	},
}

type economics struct {
	potentialLoss int
	treatmentCost int
}

var economicsBySeverity = map[domain.Severity]economics{
	domain.SeverityHigh:     {potentialLoss: 3000, treatmentCost: 250},
	domain.SeverityModerate: {potentialLoss: 2000, treatmentCost: 150},
	domain.SeverityLow:      {potentialLoss: 1000, treatmentCost: 100},
}

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// placeholderConditions stand in for weather when no snapshot is available
var placeholderConditions = domain.CurrentConditions{
	Temperature: 24,
	Humidity:    70,
	Rainfall:    10,
	WindSpeed:   8,
}
