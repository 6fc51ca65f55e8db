package providers

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

const offlineSummary = "Great work! You've implemented functional logic and with a few changes (readability, naming, and " +
	"idiomatic constructs) the code will be more maintainable and efficient. Keep iterating!"

type offlineFeedback struct {
	PositiveRephrasing   string `json:"positive_rephrasing"`
	TheWhy               string `json:"the_why"`
	SuggestedImprovement string `json:"suggested_improvement"`
	ResourceLink         string `json:"resource_link"`
}

var offlinePayload = offlineFeedback{
	PositiveRephrasing:   "Nice work, the logic is solid. We can make this clearer and slightly more efficient by simplifying the loop and improving naming.",
	TheWhy:               "Combining boolean checks and using idiomatic constructs improves readability and performance for larger lists.",
	SuggestedImprovement: "def get_active_users(users):\n    return [user for user in users if user.is_active and user.profile_complete]",
	ResourceLink:         "https://docs.python.org/3/tutorial/datastructures.html#list-comprehensions",
}

// Offline is a deterministic stand-in for a hosted model. Prompts that ask
// for JSON get a canned feedback object; anything else gets canned prose.
// It never touches the network.
type Offline struct {
	mu    sync.Mutex
	calls []Request
}

// NewOffline creates an offline provider.
func NewOffline() *Offline {
	return &Offline{}
}

func (o *Offline) Name() string { return "offline" }

func (o *Offline) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, &ServiceError{Provider: o.Name(), Err: err}
	}

	o.mu.Lock()
	o.calls = append(o.calls, req)
	o.mu.Unlock()

	if wantsJSON(req.UserPrompt) {
		data, err := json.Marshal(offlinePayload)
		if err != nil {
			return Response{}, &ResponseError{Provider: o.Name(), Reason: "encoding canned payload", Err: err}
		}
		return Response{Content: string(data)}, nil
	}
	return Response{Content: offlineSummary}, nil
}

// Calls returns a copy of the requests received so far.
func (o *Offline) Calls() []Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Request(nil), o.calls...)
}

func wantsJSON(prompt string) bool {
	return strings.Contains(prompt, JSONInstruction) ||
		strings.Contains(prompt, "in the following JSON format")
}
