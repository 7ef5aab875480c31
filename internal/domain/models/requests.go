package models

// Requests for the REST endpoints. Defined in domain for consistency and reuse.

type ForecastRequest struct {
	Days int `query:"days" json:"days" default:"7" validate:"gte=1,lte=30"`
}

type AlertsRequest struct {
	Days int `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
}

type HistoricalRequest struct {
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
	Source string `query:"source" json:"source" validate:"omitempty,oneof=twitter reddit news forums"`
}

type TrendsRequest struct {
	Window int `query:"window" json:"window" default:"7" validate:"gte=2,lte=90"`
}

type AnalyzeRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

type AnalyzeBatchRequest struct {
	Texts []string `json:"texts" validate:"required,min=1,max=100,dive,required,max=10000"`
}

type RealtimeRequest struct {
	Minutes int `query:"minutes" json:"minutes" default:"60" validate:"gte=1,lte=1440"`
}

type ExportRequest struct {
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json csv"`
}

type RetrainRequest struct {
	Days int `json:"days" default:"90" validate:"gte=21,lte=365"`
}
