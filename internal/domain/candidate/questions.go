package candidate

const (
	questionsPerSkill = 2
	maxQuestions      = 5
)

var questionBank = map[string][]string{
	"React": {
		"What's the difference between useMemo and useCallback?",
		"Explain how React's virtual DOM works and its benefits",
		"How would you optimize performance in a React application?",
		"Explain the concept of React Hooks and give examples of built-in hooks",
	},
	"Node.js": {
		"How does the event loop work in Node.js?",
		"What are streams in Node.js and how would you use them?",
		"Explain the difference between process.nextTick() and setImmediate()",
		"How would you handle errors in a Node.js application?",
	},
	"TypeScript": {
		"What are the benefits of using TypeScript over JavaScript?",
		"Explain the difference between interfaces and types in TypeScript",
		"How would you handle nullable properties in TypeScript?",
		"Describe how generics work in TypeScript with examples",
	},
	"Java": {
		"Explain the difference between final, finally, and finalize in Java",
		"How does garbage collection work in Java?",
		"What are the new features introduced in Java 11?",
		"Explain the principles of Object-Oriented Programming in Java",
	},
	"Python": {
		"What are decorators in Python and how would you use them?",
		"Explain the difference between lists and tuples in Python",
		"How does memory management work in Python?",
		"What is the Global Interpreter Lock (GIL) and how does it affect Python programs?",
	},
}

// ScreeningQuestions picks the first two bank questions of each known skill, in skill order,
// capped at five.
func ScreeningQuestions(skills []string) []string {
	var out []string
	for _, skill := range skills {
		qs := questionBank[skill]
		if len(qs) > questionsPerSkill {
			qs = qs[:questionsPerSkill]
		}
		out = append(out, qs...)
		if len(out) >= maxQuestions {
			return out[:maxQuestions]
		}
	}
	return out
}
