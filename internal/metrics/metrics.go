package metrics

import "sync"

// Usage tallies token consumption of successful completions.
type Usage struct {
	mu               sync.Mutex
	requests         int
	promptTokens     int
	completionTokens int
}

type Snapshot struct {
	Requests         int
	PromptTokens     int
	CompletionTokens int
}

func (s Snapshot) TotalTokens() int { return s.PromptTokens + s.CompletionTokens }

func (u *Usage) Add(prompt, completion int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requests++
	u.promptTokens += prompt
	u.completionTokens += completion
}

func (u *Usage) Snapshot() Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Snapshot{
		Requests:         u.requests,
		PromptTokens:     u.promptTokens,
		CompletionTokens: u.completionTokens,
	}
}
