package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"techhire-interview-bot/internal/analyzer"
	"techhire-interview-bot/internal/collector"
	"techhire-interview-bot/internal/config"
	"techhire-interview-bot/internal/interviewer"
	"techhire-interview-bot/internal/metrics"
	"techhire-interview-bot/internal/storage"
)

// Controller drives one interview session through the conversation states.
// It owns the session exclusively; the collector, interviewer and analyzer
// only ever see the data they are handed.
type Controller struct {
	cfg         *config.Config
	collector   *collector.Service
	interviewer *interviewer.Service
	analyzer    *analyzer.Service
	store       *storage.Store
	metrics     *metrics.Metrics
	in          *bufio.Scanner
	out         io.Writer

	session         *storage.Session
	followUps       map[string]int
	pendingFollowUp string
	currentQuestion string
	currentTopic    string
	currentAnswer   string
	lastSkipped     bool
	skippedCount    int
}

// New creates a controller for a single session
func New(cfg *config.Config, col *collector.Service, itv *interviewer.Service, anl *analyzer.Service, store *storage.Store, m *metrics.Metrics, in *bufio.Scanner, out io.Writer) *Controller {
	return &Controller{
		cfg:         cfg,
		collector:   col,
		interviewer: itv,
		analyzer:    anl,
		store:       store,
		metrics:     m,
		in:          in,
		out:         out,
		followUps:   make(map[string]int),
	}
}

// Run conducts the interview from greeting to save and returns the sealed
// session. The returned error is non-nil only when the transcript could not
// be persisted.
func (c *Controller) Run(ctx context.Context) (*storage.Session, error) {
	c.session = storage.NewSession()
	c.metrics.IncrementSessionsStarted()

	for {
		switch c.session.State {
		case storage.StateGreeting:
			c.handleGreeting()
		case storage.StateCollectingProfile:
			c.handleCollecting()
		case storage.StateAsking:
			c.handleAsking(ctx)
		case storage.StateAwaitingAnswer:
			c.handleAwaitingAnswer()
		case storage.StateAnalyzing:
			c.handleAnalyzing(ctx)
		case storage.StateDeciding:
			c.handleDeciding()
		case storage.StateSaving:
			return c.save(true)
		case storage.StateAborted:
			return c.save(false)
		default:
			return c.save(false)
		}
	}
}

// handleGreeting prints the welcome message
func (c *Controller) handleGreeting() {
	fmt.Fprintln(c.out, `🤖 Welcome to the TechHire AI Interview Assistant!

I'll collect your basic information first, then ask technical questions
tailored to your tech stack and experience.

Type 'exit' or 'quit' at any time to end the conversation.`)

	c.session.State = storage.StateCollectingProfile
}

// handleCollecting delegates to the profile collector
func (c *Controller) handleCollecting() {
	profile, err := c.collector.Collect()
	if err != nil {
		if !errors.Is(err, collector.ErrAborted) {
			fmt.Fprintf(c.out, "❌ Could not collect your information: %v\n", err)
		}
		c.session.State = storage.StateAborted
		return
	}

	c.session.Profile = *profile

	tier := interviewer.TierFor(profile.YearsExperience, c.cfg.Seniority)
	fmt.Fprintf(c.out, "\n✅ Perfect! I have all your information.\n")
	fmt.Fprintf(c.out, "Based on your tech stack (%s) and %.0f years of experience, questions are tailored for a %s developer.\n\n",
		strings.Join(profile.TechStack, ", "), profile.YearsExperience, tier)

	c.session.State = storage.StateAsking
}

// handleAsking obtains the next question from the interviewer
func (c *Controller) handleAsking(ctx context.Context) {
	var question string
	var err error

	if c.pendingFollowUp != "" {
		c.currentTopic = c.pendingFollowUp
		question, err = c.interviewer.GenerateFollowUp(ctx, &c.session.Profile, c.session.Exchanges, c.currentTopic)
		if err == nil {
			c.metrics.IncrementFollowUpsAsked()
			fmt.Fprintf(c.out, "🔍 Follow-up question %d:\n%s\n", len(c.session.Exchanges)+1, question)
		}
	} else {
		question, c.currentTopic, err = c.interviewer.GenerateQuestion(ctx, &c.session.Profile, c.session.Exchanges)
		if err == nil {
			c.metrics.IncrementQuestionsAsked()
			fmt.Fprintf(c.out, "❓ Question %d:\n%s\n", len(c.session.Exchanges)+1, question)
		}
	}

	if err != nil {
		fmt.Fprintln(c.out, "❌ I can't generate any more questions right now. Ending the interview.")
		c.session.State = storage.StateAborted
		return
	}

	c.currentQuestion = question
	c.session.State = storage.StateAwaitingAnswer
}

// handleAwaitingAnswer blocks on the candidate's answer
func (c *Controller) handleAwaitingAnswer() {
	fmt.Fprint(c.out, "Your answer (type 'skip' to move on): ")

	if !c.in.Scan() {
		// End of input counts as leaving the interview
		c.session.State = storage.StateSaving
		return
	}
	answer := strings.TrimSpace(c.in.Text())

	if collector.IsExitCommand(answer) {
		fmt.Fprintln(c.out, "👋 Ending the interview, thank you for your time!")
		c.session.State = storage.StateSaving
		return
	}

	if answer == "" {
		fmt.Fprintln(c.out, "Please provide an answer to the question, or type 'skip' to move on.")
		return
	}

	c.currentAnswer = answer
	c.session.State = storage.StateAnalyzing
}

// handleAnalyzing attaches the analysis and appends the exchange. The
// covered-topics set stays derived from the exchange log, so appending here
// is the only bookkeeping needed.
func (c *Controller) handleAnalyzing(ctx context.Context) {
	answer := c.currentAnswer
	var result storage.AnalysisResult

	if strings.EqualFold(answer, "skip") {
		answer = "Skipped"
		result = storage.AnalysisResult{
			CoveredTopic: c.currentTopic,
			DepthSignal:  storage.DepthSurface,
		}
		c.lastSkipped = true
		c.skippedCount++
	} else {
		result = c.analyzer.Analyze(ctx, c.currentQuestion, answer, c.currentTopic)
		c.lastSkipped = false
	}

	c.session.AppendExchange(storage.QAExchange{
		Topic:     c.currentTopic,
		Question:  c.currentQuestion,
		Answer:    answer,
		Analysis:  result,
		CreatedAt: time.Now().UTC(),
	})

	c.session.State = storage.StateDeciding
}

// handleDeciding picks the next move: follow up on a shallow answer, move to
// the next topic, or end the interview
func (c *Controller) handleDeciding() {
	c.pendingFollowUp = ""

	if len(c.session.Exchanges) >= c.cfg.GetMaxExchanges() {
		c.session.State = storage.StateSaving
		return
	}

	if c.allTopicsAdequate() {
		c.session.State = storage.StateSaving
		return
	}

	last := c.session.Exchanges[len(c.session.Exchanges)-1]
	key := strings.ToLower(last.Topic)
	if !c.lastSkipped && last.Analysis.DepthSignal == storage.DepthSurface && c.followUps[key] < c.cfg.GetFollowupBudget() {
		c.followUps[key]++
		c.pendingFollowUp = last.Topic
	}

	c.session.State = storage.StateAsking
}

// allTopicsAdequate reports whether every tech stack entry reached at least
// adequate depth
func (c *Controller) allTopicsAdequate() bool {
	for _, tech := range c.session.Profile.TechStack {
		depth := c.session.TopicDepth(tech)
		if depth != storage.DepthAdequate && depth != storage.DepthDeep {
			return false
		}
	}
	return true
}

// save seals and persists the session. It is reached from SAVING as well as
// from ABORTED: partial data is always written, flagged incomplete.
func (c *Controller) save(complete bool) (*storage.Session, error) {
	if complete {
		c.session.State = storage.StateDone
		c.metrics.IncrementSessionsCompleted()
	} else {
		c.metrics.IncrementSessionsAborted()
	}
	c.session.Seal(complete)

	path, err := c.store.Save(c.session)
	if err != nil {
		fmt.Fprintln(c.out, "❌ Could not save the interview transcript.")
		return c.session, fmt.Errorf("error saving session: %w", err)
	}

	if complete {
		c.printCompletionSummary(path)
	} else {
		fmt.Fprintf(c.out, "👋 Thank you for your time! A partial transcript was saved to: %s\n", path)
	}

	return c.session, nil
}

// printCompletionSummary mirrors the transcript back to the candidate
func (c *Controller) printCompletionSummary(path string) {
	total := len(c.session.Exchanges)
	tier := interviewer.TierFor(c.session.Profile.YearsExperience, c.cfg.Seniority)

	fmt.Fprintf(c.out, `
🎉 Technical interview completed!

Thank you, %s!
• %d questions presented
• %d answered, %d skipped
• Experience level: %s
• Transcript saved to: %s

Our team will review your responses and contact you at %s within 2-3 business days.
`,
		c.session.Profile.Name,
		total,
		total-c.skippedCount,
		c.skippedCount,
		tier,
		path,
		c.session.Profile.Email)
}
