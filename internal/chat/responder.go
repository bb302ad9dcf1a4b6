package chat

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Responder produces the assistant's answer to a user message.
type Responder interface {
	Respond(input string) string
}

var replyTemplates = []string{
	"I understand your question about '%s'. Let me help you with that.",
	"Thanks for asking about '%s'. Here's what I know.",
	"That's an interesting question about '%s'. Let me provide some information.",
	"I've analyzed your query about '%s' and here's my response.",
	"Regarding '%s', I can offer the following insights.",
}

// TemplateResponder answers with one of a fixed set of canned replies that
// quote the input. It stands in for a real model.
type TemplateResponder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTemplateResponder seeds the template choice. A zero seed uses the
// current time.
func NewTemplateResponder(seed int64) *TemplateResponder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &TemplateResponder{rng: rand.New(rand.NewSource(seed))}
}

// Respond quotes input verbatim; it is escaped because replies are rendered
// as markdown.
func (r *TemplateResponder) Respond(input string) string {
	r.mu.Lock()
	i := r.rng.Intn(len(replyTemplates))
	r.mu.Unlock()
	return fmt.Sprintf(replyTemplates[i], EscapeMarkdown(input))
}
