package storage

import "time"

// Response представляет оценку одного вопроса в рамках сессии
type Response struct {
	Question      string    `json:"question"`
	Type          string    `json:"type"`
	AnswerSummary string    `json:"answer_summary"`
	Score         int       `json:"score"`
	Feedback      string    `json:"feedback"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Summary представляет итог сессии. HasAverage == false означает, что
// ответов нет и среднее не определено (это не то же самое, что 0).
type Summary struct {
	Average    float64
	HasAverage bool
	Responses  []Response
}

// Report представляет итоговый отчет интервью для вывода и экспорта
type Report struct {
	InterviewID  string     `json:"interview_id"`
	Timestamp    string     `json:"timestamp"`
	AverageScore *float64   `json:"average_score"`
	Responses    []Response `json:"responses"`
}

// NewReport собирает отчет из итога сессии
func NewReport(interviewID string, summary Summary, now time.Time) *Report {
	report := &Report{
		InterviewID: interviewID,
		Timestamp:   now.Format(time.RFC3339),
		Responses:   summary.Responses,
	}
	if summary.HasAverage {
		avg := summary.Average
		report.AverageScore = &avg
	}
	if report.Responses == nil {
		report.Responses = []Response{}
	}
	return report
}
