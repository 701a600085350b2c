package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"edanalyzer/internal/pkg/circuitbreaker"
	"edanalyzer/internal/pkg/logger"
	"edanalyzer/internal/pkg/metrics"
)

// Concluder produces the short textual summary at the top of a report.
type Concluder interface {
	Conclude(ctx context.Context, vm *ViewModel) string
}

const conclusionSystemPrompt = "Write a short, clearly understandable summary of the project. " +
	"No lists, no markdown, no symbols, no bold text. " +
	"Write 3 to at most 5 sentences. " +
	"Name the title, publisher, institution, funding notes and central technical characteristics " +
	"when they are unambiguous in the data. " +
	"Do not speculate. " +
	"The last sentence MUST read: " +
	"'The assessment refers exclusively to the portion of the site visible within the checked pages.'"

// OpenAIConcluder summarizes a report with a chat completion. The call is
// rate limited and guarded by a circuit breaker; any failure degrades to
// a fixed fallback text so report assembly never depends on the API.
type OpenAIConcluder struct {
	client  *openai.Client
	model   string
	breaker *circuitbreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewOpenAIConcluder builds a concluder. With an empty API key it stays
// inert and always returns the fallback text.
func NewOpenAIConcluder(apiKey, model string) *OpenAIConcluder {
	c := &OpenAIConcluder{
		model:   model,
		breaker: circuitbreaker.NewCircuitBreaker("openai", 3, 2*time.Minute),
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	} else {
		logger.Log.Warn("No OpenAI API key configured, conclusions disabled")
	}
	return c
}

func (c *OpenAIConcluder) Conclude(ctx context.Context, vm *ViewModel) string {
	if c.client == nil {
		return fmt.Sprintf("%s: summary not available (no LLM).", vm.ProjectName)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Sprintf("%s: summary could not be generated (%v).", vm.ProjectName, err)
	}

	llmData, err := json.MarshalIndent(vm.LLM, "", "  ")
	if err != nil {
		llmData = []byte("{}")
	}

	score := "null"
	if vm.Total.Score != nil {
		score = fmt.Sprintf("%d", *vm.Total.Score)
	}
	userPrompt := fmt.Sprintf(
		"Project name: %s\nScore: %s (band: %s)\nHosting: %s (%s)\nAnalyzed pages: %d\n\n"+
			"LLM data (project info, publisher, institutional data, years, repositories, documentation, APIs etc.):\n%s\n\n"+
			"Write a clean, short summary.",
		vm.ProjectName, score, vm.Total.Band, vm.HostingCountry, vm.HostingOrg, vm.ValidPages, llmData,
	)

	var conclusion string
	start := time.Now()
	metrics.ConclusionRequests.Inc()

	err = c.breaker.Execute(func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0.1,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: conclusionSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		conclusion = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	metrics.ConclusionLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ConclusionErrors.Inc()
		logger.Log.Warn("Conclusion generation failed",
			zap.String("project", vm.ProjectName),
			zap.Error(err))
		return fmt.Sprintf("%s: summary could not be generated (%v).", vm.ProjectName, err)
	}
	return conclusion
}
