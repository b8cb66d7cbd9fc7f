package cv

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// SkillKeywords are matched as whole words, case-insensitively.
var SkillKeywords = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript",
	"React", "Vue", "Angular", "Node.js", "Docker", "Kubernetes",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "AWS", "Azure", "GCP",
	"GraphQL", "REST", "Microservices", "Git", "CI/CD",
	"Machine Learning", "Data Science", "DevOps", "Terraform", "Kafka",
}

// ExtractSkills returns the keywords found in text, in keyword order.
func ExtractSkills(text string) []string {
	folder := cases.Fold()
	folded := folder.String(text)
	found := []string{}
	for _, skill := range SkillKeywords {
		if containsWord(folded, folder.String(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

// containsWord reports whether word occurs in s without a letter or digit
// directly before or after it.
func containsWord(s, word string) bool {
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		if !isWordRune(lastRune(s[:start])) && !isWordRune(firstRune(s[end:])) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// MergeSkills appends the skills in add that are not already in existing,
// comparing case-insensitively and keeping the first spelling seen.
func MergeSkills(existing, add []string) []string {
	folder := cases.Fold()
	seen := make(map[string]bool, len(existing)+len(add))
	out := make([]string, 0, len(existing)+len(add))
	for _, list := range [][]string{existing, add} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := folder.String(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
