// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/ugc"
)

func newScreener(t *testing.T) *ugc.Screener {
	t.Helper()
	return ugc.NewScreener(ugc.DefaultLimits(), ugc.NewSanitizer(), newFilter(t, "https://hanqa.kr"), newAllowlist())
}

/*
TestScreener_Screen walks rich content through every gate.
*/
func TestScreener_Screen(t *testing.T) {
	screener := newScreener(t)
	ctx := context.Background()

	t.Run("Accepted", func(t *testing.T) {
		markup := `<p>외국인 등록증 갱신은 <a href="https://www.hikorea.go.kr">하이코리아</a>에서 예약하세요.</p><script>x()</script>`

		screened, err := screener.Screen(ctx, ugc.ContentPost, markup)
		require.NoError(t, err)
		assert.Contains(t, screened.HTML, "hikorea.go.kr")
		assert.NotContains(t, screened.HTML, "script")
		assert.NotContains(t, screened.Text, "<")
		assert.Positive(t, screened.Length)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := screener.Screen(ctx, ugc.ContentAnswer, "<p>abcdefghi</p>")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "TOO_SHORT", ae.Code)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Equal(t, 9, ae.Meta["length"])
		assert.Equal(t, 10, ae.Meta["min"])
		assert.Equal(t, 5000, ae.Meta["max"])
	})

	t.Run("Prohibited", func(t *testing.T) {
		_, err := screener.Screen(ctx, ugc.ContentComment, "please contact me at test@example.com for help")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, ugc.CodeProhibitedContent, ae.Code)
		assert.Equal(t, apperr.KindContentPolicy, ae.Kind)
	})

	t.Run("DisallowedLink", func(t *testing.T) {
		_, err := screener.Screen(ctx, ugc.ContentPost, `<p>Check this guide: <a href="https://random-broker.com/x">here</a> okay</p>`)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, ugc.CodeDisallowedLink, ae.Code)
		assert.Equal(t, "random-broker.com", ae.Meta["domain"])
	})

	t.Run("SlashlessSchemeLinks", func(t *testing.T) {
		hrefs := []string{`https:/evil.com/x`, `https:\evil.com`, `https:evil.com`, `https:///evil.com`}

		for _, href := range hrefs {
			screened, err := screener.Screen(ctx, ugc.ContentPost, `<p>체류 연장 서류는 <a href="`+href+`">여기</a>에서 확인하세요.</p>`)
			require.NoError(t, err, href)
			assert.NotContains(t, screened.HTML, "evil.com", href)
			assert.Contains(t, screened.Text, "여기", href)
		}
	})

	t.Run("SlashlessSchemeInText", func(t *testing.T) {
		_, err := screener.Screen(ctx, ugc.ContentPost, `<p>비자 정보는 https:evil.com 에 정리되어 있어요</p>`)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.KindContentPolicy, ae.Kind)
	})

	t.Run("DroppedMarkupIsNotScreened", func(t *testing.T) {
		markup := `<p>Normal question about visa renewal</p><script>call 010-1234-5678</script>`

		screened, err := screener.Screen(ctx, ugc.ContentPost, markup)
		require.NoError(t, err)
		assert.Equal(t, "Normal question about visa renewal", screened.Text)
		assert.Equal(t, 34, screened.Length)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := screener.Screen(ctx, "chapter", "a perfectly fine sentence")
		assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
	})
}

/*
TestScreener_ScreenPlain verifies that titles never keep markup.
*/
func TestScreener_ScreenPlain(t *testing.T) {
	screener := newScreener(t)

	screened, err := screener.ScreenPlain(context.Background(), ugc.ContentPostTitle, "<b>How to renew my ARC?</b>")
	require.NoError(t, err)
	assert.Empty(t, screened.HTML)
	assert.Equal(t, "How to renew my ARC?", screened.Text)
	assert.Equal(t, 20, screened.Length)

	_, err = screener.ScreenPlain(context.Background(), ugc.ContentPostTitle, "visa help https://random-broker.com")
	assert.Equal(t, ugc.CodeProhibitedContent, apperr.As(err).Code)
}
