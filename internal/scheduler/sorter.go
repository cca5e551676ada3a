package scheduler

import "sort"

// SortSubtasks orders subtasks for allocation by the canonical rules:
// 1. Due date: earliest first (zero last)
// 2. Weight score: higher first
// 3. Order within milestone: ascending
// 4. Assessment title, milestone title, id: lexical ascending
func SortSubtasks(subtasks []Subtask) {
	sort.SliceStable(subtasks, func(i, j int) bool {
		a, b := subtasks[i], subtasks[j]

		// 1. Due date
		if a.DueDate.IsZero() != b.DueDate.IsZero() {
			return !a.DueDate.IsZero()
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}

		// 2. Weight score
		if a.WeightScore != b.WeightScore {
			return a.WeightScore > b.WeightScore
		}

		// 3. Order
		if a.Order != b.Order {
			return a.Order < b.Order
		}

		// 4. Tie-breakers
		if a.AssessmentTitle != b.AssessmentTitle {
			return a.AssessmentTitle < b.AssessmentTitle
		}
		if a.MilestoneTitle != b.MilestoneTitle {
			return a.MilestoneTitle < b.MilestoneTitle
		}
		return a.ID < b.ID
	})
}
