package prompts

import (
	"medichat/medichat/utils/logging"
	"strings"

	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

// Fill substitutes the {hospital} token in user-facing copy. Text without
// the token passes through verbatim, so overrides need not carry it.
func Fill(text, hospitalName string) string {
	return strings.ReplaceAll(text, "{hospital}", hospitalName)
}

type PromptConfig struct {
	SystemPrompt           string
	AnswerInstructions     string
	NoMatchResponse        string
	ErrorResponse          string
	DefaultReasoning       string
	GenericClarifications  []string
	HospitalClarifications []string
}

// Load reads the prompt/copy text from a properties file. Missing keys fall
// back to the defaults the service shipped with, so a partial file is fine.
func Load(path string) *PromptConfig {
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		logging.AppLogger.Warn("Prompt config load error, using defaults", zap.Error(err))
		props = properties.NewProperties()
	}

	// questions are pipe-separated since they contain commas
	parseList := func(val string, fallback []string) []string {
		if val == "" {
			return fallback
		}
		parts := strings.Split(val, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	return &PromptConfig{
		SystemPrompt: props.GetString("system_prompt",
			"You are an AI assistant for {hospital}. "+
				"Analyze the given context and query carefully. "+
				"Provide a precise, informative, and contextually relevant response."),
		AnswerInstructions: props.GetString("answer_instructions",
			"Based on the context and query, provide a comprehensive and accurate answer. "+
				"If the query cannot be directly answered from the context, suggest alternative ways to get the information."),
		NoMatchResponse: props.GetString("no_match_response",
			"I apologize, but I couldn't find a precise answer to your query. "+
				"Could you please rephrase or provide more specific details about our hospital? "+
				"I'm here to help you with information about {hospital}."),
		ErrorResponse: props.GetString("error_response",
			"I'm sorry, but I encountered an unexpected error while processing your query."),
		DefaultReasoning: props.GetString("default_reasoning",
			"Provided comprehensive answer using semantic embeddings retrieval"),
		GenericClarifications: parseList(props.GetString("generic_clarifications", ""), []string{
			"Could you provide more details about what you're looking for?",
			"Can you elaborate on your request?",
			"What specific information are you interested in?",
		}),
		HospitalClarifications: parseList(props.GetString("hospital_clarifications", ""), []string{
			"Are you looking for information about a specific department?",
			"Do you need details about patient services or medical staff?",
			"Would you like general hospital information or something more specific?",
		}),
	}
}
