package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageConcurrentAdd(t *testing.T) {
	var u Usage
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u.Add(2, 3)
		}()
	}
	wg.Wait()

	s := u.Snapshot()
	assert.Equal(t, 50, s.Requests)
	assert.Equal(t, 100, s.PromptTokens)
	assert.Equal(t, 150, s.CompletionTokens)
	assert.Equal(t, 250, s.TotalTokens())
}
