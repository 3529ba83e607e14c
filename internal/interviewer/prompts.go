package interviewer

import (
	"fmt"
	"strings"

	"techhire-interview-bot/internal/storage"
)

// tierStyles fixes the style of question requested for each seniority tier
var tierStyles = map[Tier]string{
	TierJunior: "a practical implementation-detail question (basic concepts, syntax, simple problem solving)",
	TierMid:    "a design trade-off question (design patterns, best practices, debugging)",
	TierSenior: "an architecture question (scalability, system structure, complex problem solving)",
	TierExpert: "a strategic, organizational-level question (system design, optimization, leadership scenarios)",
}

// fallbackQuestions are the canned templates used when the AI service is
// unavailable, keyed by seniority tier
var fallbackQuestions = map[Tier]string{
	TierJunior: "Can you explain the basic concepts of %s and walk me through a simple project you've built with it?",
	TierMid:    "How would you optimize performance in a %s application? Share an example from your experience.",
	TierSenior: "Design a scalable system using %s. What architectural decisions would you make and why?",
	TierExpert: "You're leading a team migrating a legacy system to %s. What's your strategy and how do you handle challenges?",
}

var fallbackFollowUps = map[Tier]string{
	TierJunior: "Can you go into more detail about how %s works under the hood in the project you described?",
	TierMid:    "What trade-offs did you consider in your %s solution, and what would you change today?",
	TierSenior: "How would your %s approach hold up at ten times the load? Walk me through the bottlenecks.",
	TierExpert: "How would you roll out that %s strategy across several teams while keeping delivery on track?",
}

func fallbackQuestion(tier Tier, topic string) string {
	return fmt.Sprintf(fallbackQuestions[tier], topic)
}

func fallbackFollowUp(tier Tier, topic string) string {
	return fmt.Sprintf(fallbackFollowUps[tier], topic)
}

// buildQuestionPrompt assembles the prompt for the next main question
func (s *Service) buildQuestionPrompt(profile *storage.CandidateProfile, exchanges []storage.QAExchange, topic string, tier Tier) string {
	var prompt strings.Builder

	prompt.WriteString("You are an experienced technical interviewer conducting a screening interview.\n\n")

	prompt.WriteString("CANDIDATE:\n")
	prompt.WriteString(fmt.Sprintf("- Desired position: %s\n", profile.DesiredRole))
	prompt.WriteString(fmt.Sprintf("- Experience: %.0f years (%s level)\n", profile.YearsExperience, tier))
	prompt.WriteString(fmt.Sprintf("- Tech stack: %s\n\n", strings.Join(profile.TechStack, ", ")))

	covered := coveredTopics(exchanges)
	if len(covered) > 0 {
		prompt.WriteString("TOPICS ALREADY COVERED (do not repeat them):\n")
		for _, t := range covered {
			prompt.WriteString(fmt.Sprintf("- %s\n", t))
		}
		prompt.WriteString("\n")
	}

	s.writeHistory(&prompt, exchanges)

	prompt.WriteString("YOUR TASK:\n")
	prompt.WriteString(fmt.Sprintf("- Ask ONE question about %s\n", topic))
	prompt.WriteString(fmt.Sprintf("- It must be %s, appropriate for a %s developer\n", tierStyles[tier], tier))
	prompt.WriteString("- Make it practical and scenario-based\n")
	prompt.WriteString("- Build on previous answers when relevant\n\n")

	prompt.WriteString("ANSWER: Write only the question text, no numbering or extra commentary.")

	return prompt.String()
}

// buildFollowUpPrompt assembles the prompt for a deeper question on the same topic
func (s *Service) buildFollowUpPrompt(profile *storage.CandidateProfile, exchanges []storage.QAExchange, topic string, tier Tier) string {
	var prompt strings.Builder

	prompt.WriteString("You are an experienced technical interviewer. The candidate's last answer stayed on the surface, so you dig deeper.\n\n")

	prompt.WriteString("CANDIDATE:\n")
	prompt.WriteString(fmt.Sprintf("- Desired position: %s\n", profile.DesiredRole))
	prompt.WriteString(fmt.Sprintf("- Experience: %.0f years (%s level)\n\n", profile.YearsExperience, tier))

	s.writeHistory(&prompt, exchanges)

	prompt.WriteString("YOUR TASK:\n")
	prompt.WriteString(fmt.Sprintf("- Ask ONE follow-up question about %s\n", topic))
	prompt.WriteString("- Dig into the last answer: practical application, edge cases, advanced concepts\n")
	prompt.WriteString(fmt.Sprintf("- Keep it appropriate for a %s developer\n\n", tier))

	prompt.WriteString("ANSWER: Write only the question text, no numbering or extra commentary.")

	return prompt.String()
}

// writeHistory appends the last few exchanges as conversational context
func (s *Service) writeHistory(prompt *strings.Builder, exchanges []storage.QAExchange) {
	window := s.cfg.GetHistoryWindow()
	if len(exchanges) == 0 || window <= 0 {
		return
	}

	start := len(exchanges) - window
	if start < 0 {
		start = 0
	}

	prompt.WriteString("RECENT DIALOGUE:\n")
	for i, ex := range exchanges[start:] {
		prompt.WriteString(fmt.Sprintf("Question %d: %s\n", start+i+1, ex.Question))
		prompt.WriteString(fmt.Sprintf("Answer %d: %s\n\n", start+i+1, ex.Answer))
	}
}

func coveredTopics(exchanges []storage.QAExchange) []string {
	seen := make(map[string]bool, len(exchanges))
	var topics []string
	for _, ex := range exchanges {
		key := strings.ToLower(ex.Topic)
		if !seen[key] {
			seen[key] = true
			topics = append(topics, ex.Topic)
		}
	}
	return topics
}
