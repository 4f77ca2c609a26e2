package detector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	code       string
	err        error
	lastSample string
}

func (f *fakeProvider) DetectLanguage(_ context.Context, text string) (string, error) {
	f.lastSample = text
	return f.code, f.err
}

func (f *fakeProvider) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input returns default without provider call", func(t *testing.T) {
		p := &fakeProvider{code: "fr"}
		d := New(p, "en", 500)

		assert.Equal(t, "en", d.Detect(ctx, "   \t\n"))
		assert.Empty(t, p.lastSample, "provider must not be called for blank input")
	})

	t.Run("provider result is normalized", func(t *testing.T) {
		p := &fakeProvider{code: " VI \n"}
		d := New(p, "en", 500)

		assert.Equal(t, "vi", d.Detect(ctx, "xin chào"))
	})

	t.Run("sample is truncated to the cap", func(t *testing.T) {
		p := &fakeProvider{code: "en"}
		d := New(p, "en", 10)

		d.Detect(ctx, strings.Repeat("a", 100))
		assert.Len(t, []rune(p.lastSample), 10)
	})

	t.Run("provider failure with vietnamese diacritics falls back to vi", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("rate limited")}
		d := New(p, "en", 500)

		assert.Equal(t, "vi", d.Detect(ctx, "Khoa Công nghệ Thông tin"))
	})

	t.Run("provider failure without diacritics falls back to default", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("rate limited")}
		d := New(p, "en", 500)

		assert.Equal(t, "en", d.Detect(ctx, "Faculty of Information Technology"))
	})

	t.Run("blank provider result goes through the heuristic", func(t *testing.T) {
		p := &fakeProvider{code: "  "}
		d := New(p, "en", 500)

		assert.Equal(t, "vi", d.Detect(ctx, "Quản trị Kinh doanh"))
	})

	t.Run("unrecognized code is returned as-is", func(t *testing.T) {
		p := &fakeProvider{code: "xx"}
		d := New(p, "en", 500)

		assert.Equal(t, "xx", d.Detect(ctx, "hello"))
	})
}
