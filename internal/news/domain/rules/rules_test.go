package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/news/domain/entities"
	"newsnotes/internal/news/domain/rules"
)

func TestHomeFeed(t *testing.T) {
	today := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	var news []entities.News
	for i := range 11 {
		news = append(news, entities.News{
			ID:    int64(i + 1),
			Title: "Новость",
			Date:  today.AddDate(0, 0, -i),
		})
	}
	// перемешанный порядок на входе
	news[0], news[7] = news[7], news[0]

	t.Run("at most n items, newest first", func(t *testing.T) {
		feed := rules.HomeFeed(news, 10)
		require.Len(t, feed, 10)
		for i := 1; i < len(feed); i++ {
			assert.False(t, feed[i].Date.After(feed[i-1].Date), "feed must be date descending")
		}
		assert.Equal(t, today, feed[0].Date)
	})

	t.Run("fewer items than n", func(t *testing.T) {
		assert.Len(t, rules.HomeFeed(news[:3], 10), 3)
	})

	t.Run("non positive n", func(t *testing.T) {
		assert.Empty(t, rules.HomeFeed(news, 0))
	})

	t.Run("same date keeps input order", func(t *testing.T) {
		same := []entities.News{{ID: 1, Date: today}, {ID: 2, Date: today}, {ID: 3, Date: today}}
		feed := rules.HomeFeed(same, 10)
		assert.Equal(t, []int64{1, 2, 3}, []int64{feed[0].ID, feed[1].ID, feed[2].ID})
	})

	t.Run("input is not modified", func(t *testing.T) {
		first := news[0]
		rules.HomeFeed(news, 5)
		assert.Equal(t, first, news[0])
	})
}

func TestCommentThread(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	comments := []entities.Comment{
		{ID: 3, CreatedAt: now.Add(2 * time.Minute)},
		{ID: 1, CreatedAt: now},
		{ID: 4, CreatedAt: now.Add(2 * time.Minute)},
		{ID: 2, CreatedAt: now.Add(time.Minute)},
	}

	thread := rules.CommentThread(comments)

	ids := make([]int64, 0, len(thread))
	for _, c := range thread {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	assert.Empty(t, rules.CommentThread(nil))
}

func TestModerator(t *testing.T) {
	moderator := rules.NewModerator(nil, "")
	assert.Equal(t, rules.DefaultBadWords(), moderator.Terms)
	assert.Equal(t, rules.DefaultWarning, moderator.Warning)

	tests := []struct {
		name    string
		text    string
		blocked bool
	}{
		{name: "clean", text: "Отличная новость", blocked: false},
		{name: "bad word inside text", text: "Какой-то текст, редиска, еще текст", blocked: true},
		{name: "second bad word", text: "ты негодяй", blocked: true},
		{name: "substring match", text: "редисками", blocked: true},
		{name: "case sensitive", text: "Редиска", blocked: false},
		{name: "empty", text: "", blocked: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := moderator.Check(tt.text)
			if !tt.blocked {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, rules.FieldText, err.Field)
			assert.Equal(t, rules.DefaultWarning, err.Message)
		})
	}
}

func TestNewModeratorCustomTerms(t *testing.T) {
	moderator := rules.NewModerator([]string{" спам ", ""}, "Без спама")
	assert.Equal(t, []string{"спам"}, moderator.Terms)

	err := moderator.Check("это спам")
	require.NotNil(t, err)
	assert.Equal(t, "Без спама", err.Message)
	assert.Nil(t, moderator.Check("редиска"))
}
