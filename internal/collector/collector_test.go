package collector

import (
	"bufio"
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCollectHappyPath(t *testing.T) {
	var out bytes.Buffer
	input := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"6",
		"Backend Developer",
		"Go, Postgres, Redis",
	}, "\n")

	svc := New(bufio.NewScanner(strings.NewReader(input)), &out)
	profile, err := svc.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if profile.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", profile.Name, "Jane Doe")
	}
	if profile.Email != "jane@example.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "jane@example.com")
	}
	if profile.YearsExperience != 6 {
		t.Errorf("YearsExperience = %v, want 6", profile.YearsExperience)
	}
	if profile.DesiredRole != "Backend Developer" {
		t.Errorf("DesiredRole = %q, want %q", profile.DesiredRole, "Backend Developer")
	}
	want := []string{"Go", "Postgres", "Redis"}
	if !reflect.DeepEqual(profile.TechStack, want) {
		t.Errorf("TechStack = %v, want %v", profile.TechStack, want)
	}
}

func TestCollectDeduplicatesTechStack(t *testing.T) {
	var out bytes.Buffer
	input := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"3",
		"Frontend Developer",
		"React, react, REACT, TypeScript, typescript, React",
	}, "\n")

	svc := New(bufio.NewScanner(strings.NewReader(input)), &out)
	profile, err := svc.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []string{"React", "TypeScript"}
	if !reflect.DeepEqual(profile.TechStack, want) {
		t.Errorf("TechStack = %v, want %v (first spelling wins, no duplicates)", profile.TechStack, want)
	}
}

func TestCollectRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	input := strings.Join([]string{
		"J", // too short
		"Jane Doe",
		"not-an-email",
		"jane@example.com",
		"many", // not a number
		"-1",   // out of range
		"2",
		"Backend Developer",
		"   ,,  ", // no usable entries
		"Go",
	}, "\n")

	svc := New(bufio.NewScanner(strings.NewReader(input)), &out)
	profile, err := svc.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if profile.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", profile.Name, "Jane Doe")
	}
	if profile.YearsExperience != 2 {
		t.Errorf("YearsExperience = %v, want 2", profile.YearsExperience)
	}
	if !reflect.DeepEqual(profile.TechStack, []string{"Go"}) {
		t.Errorf("TechStack = %v, want [Go]", profile.TechStack)
	}

	text := out.String()
	for _, want := range []string{"valid email", "valid number of years", "at least one technology"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing re-prompt %q:\n%s", want, text)
		}
	}
}

func TestCollectAbortsOnExitToken(t *testing.T) {
	cases := map[string][]string{
		"exit at name prompt":   {"exit"},
		"quit at email prompt":  {"Jane Doe", "QUIT"},
		"bye at stack prompt":   {"Jane Doe", "jane@example.com", "4", "Backend Developer", "bye"},
		"end of input mid-flow": {"Jane Doe"},
	}

	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			svc := New(bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n"))), &out)
			_, err := svc.Collect()
			if !errors.Is(err, ErrAborted) {
				t.Errorf("Collect() error = %v, want ErrAborted", err)
			}
		})
	}
}

func TestIsExitCommand(t *testing.T) {
	for _, input := range []string{"exit", "Exit", "QUIT", " bye ", "goodbye", "end", "stop"} {
		if !IsExitCommand(input) {
			t.Errorf("IsExitCommand(%q) = false, want true", input)
		}
	}
	for _, input := range []string{"", "exited", "stop the presses", "I want to quit my job"} {
		if IsExitCommand(input) {
			t.Errorf("IsExitCommand(%q) = true, want false", input)
		}
	}
}

func TestParseTechStack(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple list", "Go, Redis", []string{"Go", "Redis"}},
		{"case-variant duplicates", "go, Go, GO", []string{"go"}},
		{"empty entries dropped", " , Go,, Redis, ", []string{"Go", "Redis"}},
		{"nothing usable", "  ,, ", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTechStack(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseTechStack(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
