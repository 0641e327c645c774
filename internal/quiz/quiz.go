// Package quiz holds the static career catalog, the question bank, and the
// scoring rules.
//
// Everything here is fixed data plus a tally — there is no adaptive logic,
// no question pool rotation, no difficulty model. The tables are slices
// (not maps) wherever order matters: the presenting order of goals, skills,
// and questions is the insertion order of these literals, and grading
// depends on that order staying deterministic.
package quiz

import (
	"fmt"
	"strings"
)

// PassThreshold is the score below which a goal's skills are flagged as
// gaps. 70 is the quiz pass bar used throughout the app.
const PassThreshold = 70

// Question is one multiple-choice question. Answer is the correct option's
// exact text, not an index — submissions are compared by string equality.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  string   `json:"-"` // never sent to clients; grading is server-side
}

// Goal is a career goal and its ordered skill list.
type Goal struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// SkillQuestions groups the questions for one skill, in presenting order.
type SkillQuestions struct {
	Skill     string     `json:"skill"`
	Questions []Question `json:"questions"`
}

// Goals is the career catalog, in presenting order.
var Goals = []Goal{
	{Name: "Data Scientist", Skills: []string{"Python", "SQL", "ML", "Statistics", "Visualization"}},
	{Name: "Web Developer", Skills: []string{"HTML", "CSS", "JavaScript", "React", "Backend"}},
	{Name: "AI Engineer", Skills: []string{"Python", "ML", "DL", "NLP", "Math"}},
}

// questionBank maps a skill to its question list. Skills without an entry
// simply contribute no questions to a quiz — they are assessed only through
// the overall score.
var questionBank = map[string][]Question{
	"Python": {
		{Prompt: "len([1,2,3]) ?", Options: []string{"2", "3", "4", "5"}, Answer: "3"},
		{Prompt: "Keyword for function?", Options: []string{"fun", "define", "def", "func"}, Answer: "def"},
		{Prompt: "List symbol?", Options: []string{"()", "{}", "[]", "<>"}, Answer: "[]"},
	},
	"SQL": {
		{Prompt: "SELECT returns?", Options: []string{"rows", "tables", "columns", "files"}, Answer: "rows"},
		{Prompt: "Filter keyword?", Options: []string{"WHERE", "WHEN", "IF", "FILTER"}, Answer: "WHERE"},
	},
}

// GoalByName looks up a career goal by its exact name.
func GoalByName(name string) (Goal, bool) {
	for _, g := range Goals {
		if g.Name == name {
			return g, true
		}
	}
	return Goal{}, false
}

// QuestionsFor returns the quiz for a goal: each of the goal's skills that
// has questions, in the goal's skill order, questions in bank order. This
// is the presenting order, and it is also the order graded answers must
// arrive in.
func QuestionsFor(goal Goal) []SkillQuestions {
	var out []SkillQuestions
	for _, skill := range goal.Skills {
		if qs, ok := questionBank[skill]; ok {
			out = append(out, SkillQuestions{Skill: skill, Questions: qs})
		}
	}
	return out
}

// Result is the outcome of grading one submission.
type Result struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Percent int      `json:"percent"` // truncated, never rounded
	Gaps    []string `json:"gaps"`    // skills to improve; empty when passing
}

// Grade scores a submission against a goal's quiz.
//
// answers are the selected option texts in presenting order (the flattened
// order QuestionsFor yields). A missing answer counts as wrong; extra
// answers beyond the question count are ignored.
//
// SCORING:
// percent = correct*100/total with integer division. Truncation is
// deliberate and load-bearing: 7 of 10 is exactly 70 and passes, but
// 2 of 3 is 66 (not 67) and fails. Do not "fix" this to rounding.
//
// Below PassThreshold the gap list is ALL of the goal's skills, not just
// the quizzed ones — a failing score flags the whole goal as needing work.
func Grade(goal Goal, answers []string) (Result, error) {
	correct, total := 0, 0
	for _, sq := range QuestionsFor(goal) {
		for _, q := range sq.Questions {
			if total < len(answers) && answers[total] == q.Answer {
				correct++
			}
			total++
		}
	}

	if total == 0 {
		return Result{}, fmt.Errorf("quiz: no questions available for goal %q", goal.Name)
	}

	res := Result{
		Correct: correct,
		Total:   total,
		Percent: correct * 100 / total,
		Gaps:    []string{},
	}
	if res.Percent < PassThreshold {
		res.Gaps = append(res.Gaps, goal.Skills...)
	}
	return res, nil
}

// Plan renders the study-plan text shown after an assessment. With no gaps
// it congratulates; otherwise it lists the weak areas and the fixed
// step-by-step advice.
func Plan(goal string, gaps []string) string {
	if len(gaps) == 0 {
		return fmt.Sprintf("Great work! You are on track for %s. Keep practicing daily to hold your streak.", goal)
	}
	return fmt.Sprintf(`Personalized Plan for %s

You need improvement in:
%s

Step-by-step:
1. Study basics
2. Practice daily
3. Build mini projects
4. Take free courses
5. Track progress

Spend 1-2 hours daily.
Within 30 days you can close these gaps.`, goal, strings.Join(gaps, ", "))
}
