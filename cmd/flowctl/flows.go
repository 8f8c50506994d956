package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/sahayak-backend/internal/app"
	"github.com/yungbote/sahayak-backend/internal/flows"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

var (
	language    string
	imageOut    string
	audioOut    string
	speechOut   string
	visualOut   string
	characters  string
	setting     string
	syllabusArg string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a student's question simply, with an analogy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.KnowledgeAssistant(ctx, flows.KnowledgeInput{
				Question: strings.Join(args, " "),
				Language: language,
			})
			if err != nil {
				return err
			}
			printSection("Answer", out.Answer)
			return nil
		})
	},
}

var storyCmd = &cobra.Command{
	Use:   "story <prompt>",
	Short: "Write a hyperlocal story and illustrate it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.HyperlocalContent(ctx, flows.HyperlocalInput{
				Prompt:   strings.Join(args, " "),
				Language: language,
			})
			if err != nil {
				return err
			}
			printSection("Story", out.Story)
			printWarnings(out.Warnings)
			if imageOut != "" {
				return writeDataURI(imageOut, out.ImageURL)
			}
			return nil
		})
	},
}

var lessonPlanCmd = &cobra.Command{
	Use:   "lesson-plan [syllabus]",
	Short: "Draft a weekly lesson plan from a syllabus (argument or --file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		syllabus := strings.Join(args, " ")
		if syllabusArg != "" {
			b, err := os.ReadFile(syllabusArg)
			if err != nil {
				return err
			}
			syllabus = string(b)
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.LessonPlan(ctx, flows.LessonPlanInput{WeeklySyllabus: syllabus})
			if err != nil {
				return err
			}
			printSection("Lesson plan", out.LessonPlan)
			return nil
		})
	},
}

var worksheetsCmd = &cobra.Command{
	Use:   "worksheets <textbook-page-image>",
	Short: "Create easy, intermediate and advanced worksheets from a textbook page photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		uri := media.DataURI(imageMIME(args[0]), b)
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.DifferentiatedWorksheets(ctx, flows.WorksheetsInput{TextbookPagePhotoDataURI: uri})
			if err != nil {
				return err
			}
			printSection("Easy", out.EasyWorksheet)
			printSection("Intermediate", out.IntermediateWorksheet)
			printSection("Advanced", out.AdvancedWorksheet)
			return nil
		})
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script <topic>",
	Short: "Write a role-play script, optionally narrated to --audio-out",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.RolePlayScript(ctx, flows.RolePlayInput{
				Topic:      strings.Join(args, " "),
				Characters: characters,
				Setting:    setting,
				Language:   language,
			})
			if err != nil {
				return err
			}
			printSection("Script", out.Script)
			if audioOut == "" {
				return nil
			}
			audio, err := a.Services.Flows.ScriptAudio(ctx, flows.ScriptAudioInput{Script: out.Script})
			if err != nil {
				return err
			}
			printWarnings(audio.Warnings)
			fmt.Println(heading("Audio mode:"), audio.Mode)
			if audio.AudioDataURI == "" {
				return nil
			}
			return writeDataURI(audioOut, audio.AudioDataURI)
		})
	},
}

var speechCmd = &cobra.Command{
	Use:   "speech <text>",
	Short: "Read text aloud into a WAV file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.GenerateSpeech(ctx, flows.SpeechInput{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			return writeDataURI(speechOut, out.AudioDataURI)
		})
	},
}

var visualAidCmd = &cobra.Command{
	Use:   "visual-aid <description>",
	Short: "Draw a blackboard-style line drawing into a PNG file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			out, err := a.Services.Flows.VisualAid(ctx, flows.VisualAidInput{Prompt: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			return writeDataURI(visualOut, out.MediaURL)
		})
	},
}

func imageMIME(path string) string {
	switch strings.ToLower(path[strings.LastIndex(path, ".")+1:]) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func init() {
	for _, c := range []*cobra.Command{askCmd, storyCmd, scriptCmd} {
		c.Flags().StringVar(&language, "language", "English", "language of the generated text")
	}
	storyCmd.Flags().StringVar(&imageOut, "image-out", "", "write the illustration to this file")
	lessonPlanCmd.Flags().StringVar(&syllabusArg, "file", "", "read the weekly syllabus from this file")
	scriptCmd.Flags().StringVar(&characters, "characters", "", "comma-separated characters (optional)")
	scriptCmd.Flags().StringVar(&setting, "setting", "", "where the scene takes place (optional)")
	scriptCmd.Flags().StringVar(&audioOut, "audio-out", "", "narrate the script into this WAV file")
	speechCmd.Flags().StringVar(&speechOut, "out", "speech.wav", "output WAV file")
	visualAidCmd.Flags().StringVar(&visualOut, "out", "visual-aid.png", "output image file")
}
