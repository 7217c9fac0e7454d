package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"

	"boatchat-client/internal/bootstrap"
	"boatchat-client/internal/config"
	"boatchat-client/internal/tracer"
	"boatchat-client/pkg/answer"
)

func main() {
	color.Cyan("=== Boat Assistant Client Simulation ===")

	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()
	ctx := context.Background()

	container, err := bootstrap.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer container.Close()

	container.Startup(ctx)
	snapshot := container.Store.State()
	color.Yellow("History store: %s", snapshot.IsCosmosDBAvailable.Status)

	prompts := []string{
		"Tell me about the 220 Bay.",
		"What are the value propositions of the 220 Bay?",
	}

	for _, prompt := range prompts {
		fmt.Println()
		color.Cyan("USER: %s", prompt)

		start := time.Now()
		ask, err := container.AssistantService.Ask(ctx, prompt)
		elapsed := time.Since(start)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}

		parsed := container.Parser.Parse(ask)
		color.Green("ASSISTANT (%s):", elapsed.Round(time.Millisecond))
		fmt.Println(parsed.MarkdownFormatText)

		for i, citation := range parsed.Citations {
			color.Yellow("  [%d] %s", i+1, answer.Label(citation, i, true))
		}
		for _, vp := range ask.ValuePropositions {
			color.Yellow("  * %s: %s", vp.Proposition, vp.Details)
		}

		container.FeedbackService.Initialize(ask)
		if ask.MessageId != "" {
			container.FeedbackService.Like(ctx, ask.MessageId)
			color.Yellow("  feedback: %s", container.Store.State().FeedbackState[ask.MessageId])
		}
	}

	fmt.Println()
	history := container.Store.State().ChatHistory
	color.Cyan("Conversations in history: %d", len(history))
	for _, conv := range history {
		fmt.Printf("  - %s (%d messages)\n", conv.Title, len(conv.Messages))
	}
}
