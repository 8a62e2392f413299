package services

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// CleanOCRText runs the deterministic cleanup pass over raw OCR output:
// common character-substitution fixes (split "@" in emails), line-wrap
// merging, a conservative spell correction, punctuation respacing and
// month-name date normalization.
func CleanOCRText(raw string) string {
	text := fixCommonOCRErrors(raw)
	text = mergeLineWraps(text)
	text = correctWords(text)
	text = respacePunctuation(text)
	text = splitCamelBoundaries(text)
	text = normalizeMonthDates(text)
	return strings.TrimSpace(text)
}

var (
	reSplitAt      = regexp.MustCompile(`\s+@\s*`)
	reSplitDotCom  = regexp.MustCompile(`\s+\.com\b`)
	reSpaceBefore  = regexp.MustCompile(`\s+([.,!?;:])`)
	reSpaceAfter   = regexp.MustCompile(`([.,!?;:])(\S)`)
	reCamel        = regexp.MustCompile(`([a-z])([A-Z])`)
	reMonthDate    = regexp.MustCompile(`\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`)
	reHyphenWrap   = regexp.MustCompile(`([a-z])-\n([a-z])`)
	reSingleBreak  = regexp.MustCompile(`([^\n])\n([^\n])`)
	reNumericMonth = regexp.MustCompile(`^\d{1,2}/\d{4}$`)
)

// fixCommonOCRErrors repairs the recurring recognition mistakes around
// email addresses, where the "@" tends to come out detached or misread.
func fixCommonOCRErrors(text string) string {
	text = strings.ReplaceAll(text, " egmail.com", "@gmail.com")
	text = reSplitAt.ReplaceAllString(text, "@")
	text = reSplitDotCom.ReplaceAllString(text, ".com")
	return text
}

// mergeLineWraps joins words hyphenated across line breaks and folds
// single newlines into spaces, keeping paragraph breaks intact.
func mergeLineWraps(text string) string {
	text = reHyphenWrap.ReplaceAllString(text, "$1$2")
	text = reSingleBreak.ReplaceAllString(text, "$1 $2")
	return text
}

func respacePunctuation(text string) string {
	text = reSpaceBefore.ReplaceAllString(text, "$1")
	text = reSpaceAfter.ReplaceAllString(text, "$1 $2")
	return text
}

// splitCamelBoundaries separates words OCR glued together across a
// lowercase/uppercase boundary ("ExperienceManager" stays, "ofTechnical"
// becomes "of Technical").
func splitCamelBoundaries(text string) string {
	return reCamel.ReplaceAllString(text, "$1 $2")
}

// normalizeMonthDates rewrites month-name dates ("Mar 2021") to the
// numeric MM/YYYY form the downstream prompt expects.
func normalizeMonthDates(text string) string {
	return reMonthDate.ReplaceAllStringFunc(text, func(match string) string {
		parts := reMonthDate.FindStringSubmatch(match)
		t, err := time.Parse("Jan 2006", parts[1]+" "+parts[2])
		if err != nil {
			return match
		}
		return t.Format("01/2006")
	})
}

// ocrConfusions are substitutions Tesseract commonly gets wrong in
// lowercase body text. Applied only when the result is a known word.
var ocrConfusions = [][2]string{
	{"rn", "m"},
	{"vv", "w"},
	{"cl", "d"},
}

// correctWords fixes lowercase dictionary misses while preserving proper
// nouns, emails, titlecase and uppercase tokens, and anything carrying
// digits or symbols.
func correctWords(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		for j, field := range fields {
			fields[j] = correctToken(field)
		}
		lines[i] = strings.Join(fields, " ")
	}
	return strings.Join(lines, "\n")
}

func correctToken(token string) string {
	word := strings.Trim(token, ".,!?;:()[]\"'")
	if len(word) <= 3 || !isLowerAlpha(word) || commonWords[word] {
		return token
	}

	for _, sub := range ocrConfusions {
		if !strings.Contains(word, sub[0]) {
			continue
		}
		candidate := strings.Replace(word, sub[0], sub[1], 1)
		if commonWords[candidate] {
			return strings.Replace(token, word, candidate, 1)
		}
	}

	return token
}

func isLowerAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// commonWords is the cleanup dictionary: frequent English words plus the
// vocabulary that dominates resumes. A miss here just leaves the token
// untouched, so the list errs on the small side.
var commonWords = buildWordSet(
	"about", "above", "achieved", "across", "administration", "agile",
	"analysis", "analytics", "application", "applications", "architecture",
	"assisted", "automation", "backend", "bachelor", "between", "built",
	"business", "certified", "cloud", "collaborated", "college",
	"communication", "company", "computer", "coordinated", "created",
	"customer", "data", "database", "databases", "degree", "delivered",
	"deployment", "design", "designed", "developed", "developer",
	"development", "devops", "during", "education", "eight", "engineer",
	"engineering", "english", "environment", "every", "experience",
	"expert", "first", "frontend", "fullstack", "graduate", "improved",
	"including", "information", "infrastructure", "integration",
	"internship", "java", "javascript", "languages", "leadership",
	"learning", "ledger", "machine", "maintained", "managed", "management",
	"manager", "marketing", "master", "mentored", "microservices",
	"migration", "mobile", "monitoring", "network", "operations",
	"optimized", "organization", "people", "performance", "pipeline",
	"platform", "product", "production", "professional", "programming",
	"project", "projects", "python", "quality", "reduced", "reporting",
	"research", "responsible", "scalable", "school", "science", "security",
	"senior", "server", "service", "services", "skills", "software",
	"solution", "solutions", "summary", "support", "system", "systems",
	"team", "teams", "technical", "technologies", "technology", "testing",
	"three", "through", "trained", "university", "using", "website",
	"where", "which", "while", "within", "worked", "working", "years",
)

func buildWordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
