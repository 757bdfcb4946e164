package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Bucket string

const (
	BucketSelfDriving      Bucket = "self-driving"
	BucketLackingRightHand Bucket = "lacking-right-hand"
)

func (b Bucket) Valid() bool {
	return b == BucketSelfDriving || b == BucketLackingRightHand
}

// Label is the human-readable form used in email copy.
func (b Bucket) Label() string {
	switch b {
	case BucketSelfDriving:
		return "Self-driving"
	case BucketLackingRightHand:
		return "Lacking a right hand"
	default:
		return string(b)
	}
}

// Classify puts totals at or above the cutoff in the self-driving bucket.
func Classify(total, cutoff int) Bucket {
	if total >= cutoff {
		return BucketSelfDriving
	}
	return BucketLackingRightHand
}

type Choice struct {
	Label string `json:"label" yaml:"label"`
	Score int    `json:"score" yaml:"score"`
}

type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Choices []Choice `json:"choices" yaml:"choices"`
}

// Quiz is the static configuration document served to the client and used
// to score submissions.
type Quiz struct {
	Title     string     `json:"title" yaml:"title"`
	Cutoff    int        `json:"cutoff" yaml:"cutoff"`
	Questions []Question `json:"questions" yaml:"questions"`
}

type Result struct {
	Total  int    `json:"total"`
	Bucket Bucket `json:"bucket"`
	Max    int    `json:"max"`
}

const (
	MinChoiceScore = 0
	MaxChoiceScore = 2
)

// Validate checks the document itself, not a submission.
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return errors.New("quiz has no questions")
	}
	if q.Cutoff < 0 {
		return fmt.Errorf("cutoff must be non-negative, got %d", q.Cutoff)
	}
	seen := make(map[string]bool, len(q.Questions))
	for i, question := range q.Questions {
		if strings.TrimSpace(question.ID) == "" {
			return fmt.Errorf("question %d has no id", i)
		}
		if seen[question.ID] {
			return fmt.Errorf("duplicate question id %q", question.ID)
		}
		seen[question.ID] = true
		if len(question.Choices) == 0 {
			return fmt.Errorf("question %q has no choices", question.ID)
		}
		for _, c := range question.Choices {
			if c.Score < MinChoiceScore || c.Score > MaxChoiceScore {
				return fmt.Errorf("question %q: choice %q scores %d, want %d..%d",
					question.ID, c.Label, c.Score, MinChoiceScore, MaxChoiceScore)
			}
		}
	}
	return nil
}

// MaxScore is the best achievable total.
func (q *Quiz) MaxScore() int {
	sum := 0
	for _, question := range q.Questions {
		best := 0
		for _, c := range question.Choices {
			if c.Score > best {
				best = c.Score
			}
		}
		sum += best
	}
	return sum
}

// Score sums every answer value and classifies the total. It does not check
// completeness; see CheckComplete.
func (q *Quiz) Score(answers map[string]int) Result {
	total := 0
	for _, v := range answers {
		total += v
	}
	return Result{
		Total:  total,
		Bucket: Classify(total, q.Cutoff),
		Max:    q.MaxScore(),
	}
}

// CheckComplete rejects answer sets that leave a question unanswered, name a
// question the quiz does not have, or carry a score no choice offers.
func (q *Quiz) CheckComplete(answers map[string]int) error {
	byID := make(map[string]Question, len(q.Questions))
	var missing []string
	for _, question := range q.Questions {
		byID[question.ID] = question
		if _, ok := answers[question.ID]; !ok {
			missing = append(missing, question.ID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("unanswered questions: %s", strings.Join(missing, ", "))
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		question, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown question %q", id)
		}
		if !question.offers(answers[id]) {
			return fmt.Errorf("question %q has no choice scoring %d", id, answers[id])
		}
	}
	return nil
}

func (q Question) offers(score int) bool {
	for _, c := range q.Choices {
		if c.Score == score {
			return true
		}
	}
	return false
}
