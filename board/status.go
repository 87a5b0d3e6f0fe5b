package board

import (
	"encoding/json"
	"regexp"
	"strings"
)

// AIStatus is the verification badge shown on an article. It is a best-effort
// reading of whatever signals the backend sent and is not authoritative.
type AIStatus string

const (
	AIVerified  AIStatus = "AI VERIFIED"
	AIReviewing AIStatus = "AI REVIEWING"
	AIWarning   AIStatus = "AI WARNING"
)

var statusDescriptions = map[AIStatus]string{
	AIVerified:  "TrueDev AI checked this post and found no technical errors.",
	AIReviewing: "TrueDev AI is still checking this post against the community guidelines.",
	AIWarning:   "TrueDev AI flagged possible factual errors or guideline violations. Double-check before relying on it.",
}

// Description is the long-form explanation shown on the detail view.
func (s AIStatus) Description() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return statusDescriptions[AIReviewing]
}

// Rule inspects an article and decides its status, or reports false to defer
// to the next rule.
type Rule func(a *Article) (AIStatus, bool)

// Rules is the default chain, highest priority first.
var Rules = []Rule{
	verifiedFlagRule,
	aiMessageRule,
	checkFlagRule,
	statusTextRule,
	hashRule,
}

// ResolveAIStatus runs the default rule chain.
func ResolveAIStatus(a *Article) AIStatus {
	return ResolveWith(Rules, a)
}

// ResolveWith runs rules in order; the first to decide wins. A nil article or
// a chain where nothing decides yields AIReviewing.
func ResolveWith(rules []Rule, a *Article) AIStatus {
	if a == nil {
		return AIReviewing
	}
	for _, rule := range rules {
		if status, ok := rule(a); ok {
			return status
		}
	}
	return AIReviewing
}

func verifiedFlagRule(a *Article) (AIStatus, bool) {
	if a.IsVerified != nil && *a.IsVerified {
		return AIVerified, true
	}
	return "", false
}

func aiMessageRule(a *Article) (AIStatus, bool) {
	msg := ParseAIMessage(a.AIMessage)
	if !msg.HasParsed {
		return "", false
	}
	if msg.IsFact {
		return AIVerified, true
	}
	if msg.AIComment != "" {
		return AIWarning, true
	}
	return "", false
}

func checkFlagRule(a *Article) (AIStatus, bool) {
	if a.IsCheck == nil {
		return "", false
	}
	if !*a.IsCheck {
		return AIReviewing, true
	}
	if a.IsVerified != nil && *a.IsVerified {
		return AIVerified, true
	}
	return AIWarning, true
}

func statusTextRule(a *Article) (AIStatus, bool) {
	normalized := strings.ToUpper(a.AIStatus)
	switch {
	case strings.Contains(normalized, "WARN"):
		return AIWarning, true
	case strings.Contains(normalized, "VERIFY"):
		return AIVerified, true
	case strings.Contains(normalized, "REVIEW"):
		return AIReviewing, true
	}
	return "", false
}

// hashRule always decides. It spreads articles without any signal across the
// three statuses deterministically.
func hashRule(a *Article) (AIStatus, bool) {
	base := a.ViewCount*3 + a.CommentCount*5 + a.LikeCount*7 + a.Key() + 13
	mod := base % 12
	if mod < 0 {
		mod = -mod
	}
	switch {
	case mod <= 2:
		return AIWarning, true
	case mod <= 6:
		return AIReviewing, true
	default:
		return AIVerified, true
	}
}

// AIMessage is the decoded form of the aiMessage field, which carries JSON
// inside a string and sometimes inside a markdown code fence.
type AIMessage struct {
	HasParsed bool
	IsFact    bool
	AIComment string
	RawText   string
}

var (
	openingFence = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*")
	closingFence = regexp.MustCompile("(?m)```$")
)

func ParseAIMessage(raw string) AIMessage {
	text := strings.TrimSpace(raw)
	if text == "" {
		return AIMessage{}
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimSpace(removeFirst(removeFirst(text, openingFence), closingFence))
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil || parsed == nil {
		return AIMessage{RawText: text}
	}
	msg := AIMessage{HasParsed: true, RawText: text}
	msg.IsFact, _ = parsed["isFact"].(bool)
	msg.AIComment = commentText(parsed["aiComment"])
	return msg
}

func removeFirst(s string, re *regexp.Regexp) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

func commentText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		if !c {
			return ""
		}
	case float64:
		if c == 0 {
			return ""
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
