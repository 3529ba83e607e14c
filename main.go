package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"techhire-interview-bot/internal/analyzer"
	"techhire-interview-bot/internal/api"
	"techhire-interview-bot/internal/collector"
	"techhire-interview-bot/internal/config"
	"techhire-interview-bot/internal/controller"
	"techhire-interview-bot/internal/interviewer"
	"techhire-interview-bot/internal/metrics"
	"techhire-interview-bot/internal/storage"
)

func main() {
	fmt.Println("🚀 Starting TechHire AI Interview Assistant...")

	// Load environment variables; a missing .env file just means the
	// process environment is used as-is
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	appCfg := config.LoadAppConfig()
	if err := appCfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Load the interview configuration
	cfg, err := config.Load(appCfg.InterviewConfigPath)
	if err != nil {
		log.Fatalf("Error loading interview configuration: %v", err)
	}

	// Initialize services
	client := api.NewOpenAIClient(appCfg.OpenAI)
	m := metrics.NewMetrics()
	store := storage.NewStore(appCfg.ResultsDir)

	scanner := bufio.NewScanner(os.Stdin)
	col := collector.New(scanner, os.Stdout)
	itv := interviewer.New(client, cfg, m)
	anl := analyzer.New(client, analyzer.NewAISentiment(client))

	ctl := controller.New(cfg, col, itv, anl, store, m, scanner, os.Stdout)

	fmt.Printf("📋 Configuration: up to %d questions, follow-up budget %d per topic\n\n",
		cfg.GetMaxExchanges(), cfg.GetFollowupBudget())

	session, err := ctl.Run(context.Background())
	if err != nil {
		log.Printf("Interview ended with an error: %v", err)
		os.Exit(1)
	}

	snap := m.GetSnapshot()
	log.Printf("session %s finished: state=%s questions=%d follow-ups=%d fallbacks=%d api_calls=%d/%d",
		session.ID, session.State,
		snap.QuestionsAsked, snap.FollowUpsAsked, snap.FallbacksUsed,
		snap.APICallsSuccessful, snap.APICallsTotal)
}
