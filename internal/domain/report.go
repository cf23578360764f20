package domain

// PathogenInfo identifies the causal organism
type PathogenInfo struct {
	Species           string `json:"species"`
	Strain            string `json:"strain"`
	MatingType        string `json:"matingType"`
	ResistanceProfile string `json:"resistanceProfile"`
}

// TreatmentEfficacy holds expected success percentages per approach
type TreatmentEfficacy struct {
	CopperBasedFungicide int `json:"copperBasedFungicide"`
	BiologicalControl    int `json:"biologicalControl"`
	CulturalPractices    int `json:"culturalPractices"`
	PreventionMeasures   int `json:"preventionMeasures"`
}

// RegionalPrevalence is the per-region risk map
type RegionalPrevalence struct {
	SoutheastAsia string `json:"southeastAsia"`
	NorthAmerica  string `json:"northAmerica"`
	Europe        string `json:"europe"`
}

// Epidemiology describes the disease's history and spread
type Epidemiology struct {
	FirstReported      int                `json:"firstReported"`
	GlobalCases        string             `json:"globalCases"`
	SeasonalPeak       string             `json:"seasonalPeak"`
	GeographicSpread   string             `json:"geographicSpread"`
	RegionalPrevalence RegionalPrevalence `json:"regionalPrevalence"`
}

// Insurance summarises crop insurance eligibility
type Insurance struct {
	CropInsuranceCoverage string `json:"cropInsuranceCoverage"`
	RiskLevel             string `json:"riskLevel"`
	PreventionCredit      string `json:"preventionCredit"`
}

// EconomicImpact estimates losses against treatment cost
type EconomicImpact struct {
	PotentialLoss int       `json:"potentialLoss"`
	TreatmentCost int       `json:"treatmentCost"`
	NetSavings    int       `json:"netSavings"`
	ROI           float64   `json:"roi"`
	Insurance     Insurance `json:"insurance"`
}

// TechnicalMetrics reports analysis quality figures. Everything except
// ImageQualityScore and ModelConfidence is synthetic filler.
type TechnicalMetrics struct {
	ImageQualityScore    int     `json:"imageQualityScore"`
	ProcessingSpeed      float64 `json:"processingSpeed"`
	ModelConfidence      float64 `json:"modelConfidence"`
	DataPointsAnalyzed   int     `json:"dataPointsAnalyzed"`
	SimilarCasesFound    int     `json:"similarCasesFound"`
	TreatmentSuccessRate int     `json:"treatmentSuccessRate"`
}

// ImageMetadata describes the uploaded image
type ImageMetadata struct {
	Size        int64  `json:"size"`
	Dimensions  string `json:"dimensions"`
	Format      string `json:"format"`
	Compression int    `json:"compression"`
}

// DiagnosticReport is the full per-request analysis returned to the caller.
// It is built once and never mutated or stored.
type DiagnosticReport struct {
	Disease                string                `json:"disease"`
	Confidence             int                   `json:"confidence"`
	Severity               Severity              `json:"severity"`
	Symptoms               []string              `json:"symptoms"`
	Treatments             []string              `json:"treatments"`
	Prevention             []string              `json:"prevention"`
	ImageLabels            []string              `json:"imageLabels"`
	ImageTags              []string              `json:"imageTags"`
	AgriculturalKeywords   []string              `json:"agriculturalKeywords"`
	TechnicalMetrics       TechnicalMetrics      `json:"technicalMetrics"`
	PathogenIdentification PathogenInfo          `json:"pathogenIdentification"`
	EnvironmentalAnalysis  EnvironmentalAnalysis `json:"environmentalAnalysis"`
	TreatmentEfficacy      TreatmentEfficacy     `json:"treatmentEfficacy"`
	Epidemiology           Epidemiology          `json:"epidemiology"`
	EconomicImpact         EconomicImpact        `json:"economicImpact"`
	WeatherAnalysis        WeatherAnalysis       `json:"weatherAnalysis"`
	Timestamp              string                `json:"timestamp"`
	Filename               string                `json:"filename"`
	AnalysisID             string                `json:"analysisId"`
	ProcessingTime         string                `json:"processingTime"`
	ImageMetadata          ImageMetadata         `json:"imageMetadata"`
	AIServices             map[ProviderName]bool `json:"aiServices"`
}
