package prompts

func RegisterAll() {
	// ---------- Text ----------

	RegisterSpec(Spec{
		Name:       PromptKnowledgeAssistant,
		Version:    1,
		SchemaName: "knowledge_answer",
		Schema:     AnswerSchema,
		System: `
You are Sahayak.AI, a friendly and helpful AI co-teacher. You answer questions from students in their local language.
You should always provide a simple answer with an analogy to help the student understand the concept.`,
		User: `
Question: {{.Question}}
Language: {{.Language}}
Answer:`,
		Validators: []Validator{
			RequireNonEmpty("Question", func(in Input) string { return in.Question }),
			RequireNonEmpty("Language", func(in Input) string { return in.Language }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptHyperlocalStory,
		Version:    1,
		SchemaName: "hyperlocal_story",
		Schema:     StorySchema,
		System: `
You are a storyteller specializing in creating culturally relevant stories for children in India.`,
		User: `
Please generate a story in the following language: {{.Language}}.
The story should be based on the following prompt:
{{.StoryPrompt}}`,
		Validators: []Validator{
			RequireNonEmpty("StoryPrompt", func(in Input) string { return in.StoryPrompt }),
			RequireNonEmpty("Language", func(in Input) string { return in.Language }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptStoryVisualPrompt,
		Version:    1,
		SchemaName: "story_visual_prompt",
		Schema:     VisualPromptSchema,
		User: `
Read the following children's story. Based on the story, create a short, descriptive, and accurate visual prompt for an AI image generator.
The prompt should describe the main characters and the key scene in a simple, visual way suitable for creating a relevant illustration.

Story:
{{.Story}}

Visual Prompt:`,
		Validators: []Validator{
			RequireNonEmpty("Story", func(in Input) string { return in.Story }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptLessonPlan,
		Version: 1,
		System: `
You are an experienced teacher.`,
		User: `
Generate a detailed and time-structured lesson plan, broken down by level, based on the following weekly syllabus:

{{.WeeklySyllabus}}

The lesson plan should include specific activities, learning objectives, and assessment methods for each level.
Make sure the lesson plan is easy to follow and implement in a classroom setting.`,
		Validators: []Validator{
			RequireNonEmpty("WeeklySyllabus", func(in Input) string { return in.WeeklySyllabus }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptDifferentiatedWorksheets,
		Version:    1,
		SchemaName: "differentiated_worksheets",
		Schema:     WorksheetsSchema,
		System: `
You are an expert educator skilled at creating differentiated worksheets based on a given textbook page.`,
		User: `
Analyze the attached textbook page photo and generate three worksheets: one for easy, one for intermediate, and one for advanced learners.
The worksheets should cover the same concepts but vary in complexity and question types.

Easy Worksheet: Focus on basic recall and understanding of the concepts.
Intermediate Worksheet: Include questions that require application and analysis of the concepts.
Advanced Worksheet: Challenge students with synthesis, evaluation, and problem-solving related to the concepts.

Ensure that the worksheets are age-appropriate and aligned with common educational standards.
Output the worksheets in a format that can be easily printed or used digitally.
Specifically, provide clear instructions, well-structured questions, and appropriate spacing for answers.`,
	})

	RegisterSpec(Spec{
		Name:       PromptAskLaterAnswer,
		Version:    1,
		SchemaName: "ask_later_answer",
		Schema:     AnswerSchema,
		System: `
You are Sahayak.AI, a friendly AI co-teacher. Answer the student's question in a simple, age-appropriate way with an analogy.`,
		User: `
Language: {{.Language}}
Question: {{.Question}}
Answer:`,
		Validators: []Validator{
			RequireNonEmpty("Question", func(in Input) string { return in.Question }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptRolePlayScript,
		Version: 1,
		System: `
You are an expert scriptwriter for educational content.`,
		User: `
Create a short, simple, and clear role-play script for students based on the following details. The script should be easy to perform in a classroom setting.

Topic/Learning Objective: {{.Topic}}
Language: {{.Language}}
{{- if .Characters}}
Characters: {{.Characters}}
{{- end}}
{{- if .Setting}}
Context: {{.Setting}}
{{- end}}
{{- if not .Characters}}
If characters are not provided, invent a simple and relevant set of characters for the topic.
{{- end}}
{{- if not .Setting}}
If a context is not provided, create an appropriate context for the topic and characters.
{{- end}}

The script should have clear dialogue for each character and simple stage directions. Format the output in Markdown.
The format must be:
**Character Name:** Dialogue here.
(Stage direction in parentheses)`,
		Validators: []Validator{
			RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
			RequireNonEmpty("Language", func(in Input) string { return in.Language }),
		},
	})

	// ---------- Image ----------

	RegisterSpec(Spec{
		Name:    PromptVisualAidSketch,
		Version: 1,
		User: `
A simple, clear line drawing that a teacher could copy onto a blackboard to explain: {{.Subject}}.
Use bold white outlines on a plain dark background, few details, and clearly separated parts.
Do not include any text, words, or letters in the image.`,
		Validators: []Validator{
			RequireNonEmpty("Subject", func(in Input) string { return in.Subject }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptAskLaterImage,
		Version: 1,
		User: `
A high-quality, realistic photo that helps explain the answer to the question: '{{.Question}}'. The style should be clear and engaging for a child.`,
		Validators: []Validator{
			RequireNonEmpty("Question", func(in Input) string { return in.Question }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptHyperlocalImage,
		Version: 1,
		User: `
{{.VisualPrompt}}.
The style should be a high-quality, photorealistic image that vividly illustrates a children's story. The image should be vibrant, clear, and engaging for kids.
IMPORTANT: Do not include any text, words, or letters in the image. The image must be purely visual.`,
		Validators: []Validator{
			RequireNonEmpty("VisualPrompt", func(in Input) string { return in.VisualPrompt }),
		},
	})
}
