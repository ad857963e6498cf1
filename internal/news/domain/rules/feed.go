// Package rules содержит правила отбора, упорядочивания и модерации контента новостей.
package rules

import (
	"slices"

	"newsnotes/internal/news/domain/entities"
)

// HomeFeed возвращает не более n самых свежих новостей, от новых к старым.
// Новости с одинаковой датой сохраняют исходный порядок.
func HomeFeed(news []entities.News, n int) []entities.News {
	if n <= 0 {
		return []entities.News{}
	}

	sorted := slices.Clone(news)
	slices.SortStableFunc(sorted, func(a, b entities.News) int {
		return b.Date.Compare(a.Date)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CommentThread упорядочивает комментарии одной новости по времени создания,
// от старых к новым. Комментарии с одинаковым временем сохраняют исходный порядок.
func CommentThread(comments []entities.Comment) []entities.Comment {
	sorted := slices.Clone(comments)
	slices.SortStableFunc(sorted, func(a, b entities.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}
