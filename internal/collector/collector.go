package collector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"techhire-interview-bot/internal/storage"
)

// ErrAborted is returned when the candidate typed an exit command or the
// input stream ended before the profile was complete
var ErrAborted = errors.New("collection aborted by candidate")

// exitCommands end the conversation from any prompt, matched case-insensitively
// against the whole trimmed line
var exitCommands = []string{"exit", "quit", "bye", "goodbye", "end", "stop"}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsExitCommand reports whether the input is one of the exit commands
func IsExitCommand(input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, cmd := range exitCommands {
		if input == cmd {
			return true
		}
	}
	return false
}

// Service collects the candidate profile over a line-based text interface
type Service struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a collector reading prompts' answers from in and writing
// prompts to out
func New(in *bufio.Scanner, out io.Writer) *Service {
	return &Service{in: in, out: out}
}

// Collect prompts for every profile field, re-prompting on invalid input,
// and returns the completed profile. It never touches the session itself.
func (s *Service) Collect() (*storage.CandidateProfile, error) {
	name, err := s.ask("What's your full name?", validateName)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Nice to meet you, %s!\n", name)

	email, err := s.ask("What's your email address?", validateEmail)
	if err != nil {
		return nil, err
	}

	yearsInput, err := s.ask("How many years of professional experience do you have? (enter a number)", validateExperience)
	if err != nil {
		return nil, err
	}
	years, _ := strconv.ParseFloat(strings.TrimSpace(yearsInput), 64)

	role, err := s.ask("What position are you interested in?", validateRole)
	if err != nil {
		return nil, err
	}

	stackInput, err := s.ask("What technologies do you work with? List your tech stack separated by commas (languages, frameworks, databases, tools).", validateTechStack)
	if err != nil {
		return nil, err
	}

	return &storage.CandidateProfile{
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		YearsExperience: years,
		DesiredRole:     strings.TrimSpace(role),
		TechStack:       ParseTechStack(stackInput),
	}, nil
}

// ask prompts until validate accepts the input or the candidate exits
func (s *Service) ask(prompt string, validate func(string) error) (string, error) {
	for {
		fmt.Fprintf(s.out, "%s\n> ", prompt)

		if !s.in.Scan() {
			return "", ErrAborted
		}
		input := strings.TrimSpace(s.in.Text())

		if IsExitCommand(input) {
			return "", ErrAborted
		}

		if err := validate(input); err != nil {
			fmt.Fprintf(s.out, "❌ %s\n", err)
			continue
		}

		return input, nil
	}
}

// ParseTechStack splits a delimited tech stack entry into a deduplicated
// list. Duplicates are matched case-insensitively; the first spelling wins.
func ParseTechStack(input string) []string {
	seen := make(map[string]bool)
	var stack []string
	for _, part := range strings.Split(input, ",") {
		tech := strings.TrimSpace(part)
		if tech == "" {
			continue
		}
		key := strings.ToLower(tech)
		if seen[key] {
			continue
		}
		seen[key] = true
		stack = append(stack, tech)
	}
	return stack
}

func validateName(input string) error {
	if len(strings.TrimSpace(input)) < 2 {
		return fmt.Errorf("please enter your full name (at least 2 characters)")
	}
	return nil
}

func validateEmail(input string) error {
	if !emailPattern.MatchString(strings.TrimSpace(input)) {
		return fmt.Errorf("please enter a valid email address (e.g., john@example.com)")
	}
	return nil
}

func validateExperience(input string) error {
	years, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || years < 0 || years > 50 {
		return fmt.Errorf("please enter a valid number of years (0-50)")
	}
	return nil
}

func validateRole(input string) error {
	if len(strings.TrimSpace(input)) < 2 {
		return fmt.Errorf("please tell us which position you are interested in")
	}
	return nil
}

func validateTechStack(input string) error {
	if len(ParseTechStack(input)) == 0 {
		return fmt.Errorf("please list at least one technology")
	}
	return nil
}
