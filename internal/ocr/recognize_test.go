package ocr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine maps image content to text; failOn content returns an error.
type fakeEngine struct {
	mu     sync.Mutex
	calls  int
	failOn string
}

func (f *fakeEngine) Name() string { return "fake" }
func (f *fakeEngine) Close() error { return nil }

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if string(image) == f.failOn {
		return "", errors.New("boom")
	}
	return "text:" + string(image), nil
}

func TestRecognizePages(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves page order across workers", func(t *testing.T) {
		pages := make([][]byte, 20)
		for i := range pages {
			pages[i] = []byte(fmt.Sprintf("p%02d", i))
		}

		engine := &fakeEngine{}
		texts, err := RecognizePages(ctx, engine, pages, 4)
		require.NoError(t, err)
		require.Len(t, texts, 20)
		for i, txt := range texts {
			assert.Equal(t, fmt.Sprintf("text:p%02d", i), txt)
		}
		assert.Equal(t, 20, engine.calls)
	})

	t.Run("no pages", func(t *testing.T) {
		texts, err := RecognizePages(ctx, &fakeEngine{}, nil, 2)
		assert.NoError(t, err)
		assert.Nil(t, texts)
	})

	t.Run("worker count clamped", func(t *testing.T) {
		engine := &fakeEngine{}
		texts, err := RecognizePages(ctx, engine, [][]byte{[]byte("a")}, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"text:a"}, texts)
	})

	t.Run("page error reported with page number", func(t *testing.T) {
		engine := &fakeEngine{failOn: "b"}
		pages := [][]byte{[]byte("a"), []byte("b"), []byte("c")}

		texts, err := RecognizePages(ctx, engine, pages, 2)
		require.Error(t, err)
		assert.Nil(t, texts)
		assert.Contains(t, err.Error(), "page 2")
	})
}

func TestJoinPages(t *testing.T) {
	assert.Equal(t, "one\ntwo", JoinPages([]string{"one", "two"}))
	assert.Equal(t, "one", JoinPages([]string{"one", ""}))
	assert.Equal(t, "", JoinPages(nil))
}
