package reasoning

var (
	ParseAnalysis        = parseAnalysis
	ParseSummary         = parseSummary
	StripCodeFence       = stripCodeFence
	AnalysisSystemPrompt = analysisSystemPrompt
	SummaryUserPrompt    = summaryUserPrompt
)
