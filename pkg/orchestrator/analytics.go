package orchestrator

// healthWindow is how many trailing attempts feed the health check.
const healthWindow = 10

// MethodStats aggregates outcomes for one extraction method.
type MethodStats struct {
	Attempts  int     `json:"attempts"`
	Successes int     `json:"successes"`
	Rate      float64 `json:"success_rate"`
}

// Analytics summarizes the attempt log for operators.
type Analytics struct {
	TotalAttempts  int                     `json:"total_attempts"`
	Successes      int                     `json:"successes"`
	SuccessRate    float64                 `json:"success_rate"`
	ByMethod       map[string]*MethodStats `json:"by_method"`
	AvgConfidence  float64                 `json:"avg_confidence"`
	AvgSuitability float64                 `json:"avg_tts_suitability"`
}

// Health reports pipeline liveness derived from recent attempts.
type Health struct {
	Status                    string  `json:"status"`
	DocumentAnalysisAvailable bool    `json:"document_analysis_available"`
	DOMExtractionAvailable    bool    `json:"dom_extraction_available"`
	RecentSuccessRate         float64 `json:"recent_success_rate"`
	RecentAttempts            int     `json:"recent_attempts"`
}

// Analytics projects the attempt log into aggregate statistics. Averages
// cover successful attempts only.
func (o *Orchestrator) Analytics() Analytics {
	attempts := o.attempts.snapshot()

	report := Analytics{
		TotalAttempts: len(attempts),
		ByMethod:      make(map[string]*MethodStats),
	}

	var confidenceSum, suitabilitySum float64
	for _, a := range attempts {
		stats := report.ByMethod[string(a.Method)]
		if stats == nil {
			stats = &MethodStats{}
			report.ByMethod[string(a.Method)] = stats
		}
		stats.Attempts++

		if !a.Success {
			continue
		}
		stats.Successes++
		report.Successes++
		if a.Result != nil {
			confidenceSum += a.Result.Confidence
			suitabilitySum += a.Result.TTSSuitability()
		}
	}

	if report.TotalAttempts > 0 {
		report.SuccessRate = float64(report.Successes) / float64(report.TotalAttempts)
	}
	if report.Successes > 0 {
		report.AvgConfidence = confidenceSum / float64(report.Successes)
		report.AvgSuitability = suitabilitySum / float64(report.Successes)
	}
	for _, stats := range report.ByMethod {
		stats.Rate = float64(stats.Successes) / float64(stats.Attempts)
	}

	return report
}

// Health inspects the trailing attempts and degrades when fewer than half
// of them succeeded. An empty log reports healthy: no evidence of failure
// is not failure.
func (o *Orchestrator) Health() Health {
	attempts := o.attempts.snapshot()
	if len(attempts) > healthWindow {
		attempts = attempts[len(attempts)-healthWindow:]
	}

	h := Health{
		Status:                    "healthy",
		DocumentAnalysisAvailable: o.doc != nil,
		DOMExtractionAvailable:    len(o.dom) > 0,
		RecentAttempts:            len(attempts),
		RecentSuccessRate:         1,
	}
	if len(attempts) == 0 {
		return h
	}

	successes := 0
	for _, a := range attempts {
		if a.Success {
			successes++
		}
	}
	h.RecentSuccessRate = float64(successes) / float64(len(attempts))
	if h.RecentSuccessRate < 0.5 {
		h.Status = "degraded"
	}
	return h
}
