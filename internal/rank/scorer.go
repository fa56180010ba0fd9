package rank

// Scorer decides whether a document's free-text subject is a physician
// hiring opportunity and how relevant it is. Two implementations exist and
// stay separate: DoctorScorer (the strict classifier the snapshot builder
// uses) and KeywordScorer (the permissive counter the interactive panel
// sorts by).
type Scorer interface {
	Score(text string) (match bool, score int)
}
