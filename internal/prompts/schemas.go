package prompts

func StringSchema(description string) map[string]any {
	s := map[string]any{"type": "string"}
	if description != "" {
		s["description"] = description
	}
	return s
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func AnswerSchema() map[string]any {
	return objectSchema(map[string]any{
		"answer": StringSchema("The answer to the question, with an analogy."),
	}, "answer")
}

func StorySchema() map[string]any {
	return objectSchema(map[string]any{
		"story": StringSchema("The generated story in the local language."),
	}, "story")
}

func VisualPromptSchema() map[string]any {
	return objectSchema(map[string]any{
		"visualPrompt": StringSchema("A short visual description of the main characters and key scene."),
	}, "visualPrompt")
}

func WorksheetsSchema() map[string]any {
	return objectSchema(map[string]any{
		"easyWorksheet":         StringSchema("Worksheet for easy level."),
		"intermediateWorksheet": StringSchema("Worksheet for intermediate level."),
		"advancedWorksheet":     StringSchema("Worksheet for advanced level."),
	}, "easyWorksheet", "intermediateWorksheet", "advancedWorksheet")
}
