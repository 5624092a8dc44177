package models

// AnalysisFlags is the canonical form of a loosely-typed AI annotation
// object attached to a submission.
type AnalysisFlags struct {
	Safe                 bool `json:"safe"`
	Complete             bool `json:"complete"`
	NeedsAnonymity       bool `json:"needs_anonymity"`
	Abnormal             bool `json:"abnormal"`
	SelectedMessageCount int  `json:"selected_message_count"`
}

// AnalysisDefaults carries independently computed fallback values used when
// an annotation field is missing or unusable.
type AnalysisDefaults struct {
	Safe           bool `json:"safe"`
	Complete       bool `json:"complete"`
	NeedsAnonymity bool `json:"needs_anonymity"`
	Abnormal       bool `json:"abnormal"`
}
