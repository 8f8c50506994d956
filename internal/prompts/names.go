package prompts

type PromptName string

const (
	// Text
	PromptKnowledgeAssistant       PromptName = "knowledge_assistant"
	PromptHyperlocalStory          PromptName = "hyperlocal_story"
	PromptStoryVisualPrompt        PromptName = "story_visual_prompt"
	PromptLessonPlan               PromptName = "lesson_plan"
	PromptDifferentiatedWorksheets PromptName = "differentiated_worksheets"
	PromptAskLaterAnswer           PromptName = "ask_later_answer"
	PromptRolePlayScript           PromptName = "role_play_script"

	// Image
	PromptVisualAidSketch PromptName = "visual_aid_sketch"
	PromptAskLaterImage   PromptName = "ask_later_image"
	PromptHyperlocalImage PromptName = "hyperlocal_image"
)
