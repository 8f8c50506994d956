package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	Question string
	Language string

	// Hyperlocal story
	StoryPrompt  string
	Story        string
	VisualPrompt string

	// Lesson plan
	WeeklySyllabus string

	// Role-play
	Topic      string
	Characters string
	Setting    string

	// Visual aid
	Subject string
}
