// Package seed читает YAML файл с новостями для начального наполнения сайта.
package seed

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"newsnotes/internal/news/domain/entities"
)

// Ошибки разбора файла новостей.
var (
	ErrEmptyTitle   = errors.New("news title is empty")
	ErrTitleTooLong = errors.New("news title is too long")
	ErrEmptyText    = errors.New("news text is empty")
)

const errDecodingFile = "error decoding seed file"

// File - содержимое YAML файла новостей.
type File struct {
	News []Item `yaml:"news"`
}

// Item - одна новость файла. Дата необязательна.
type Item struct {
	Title string     `yaml:"title"`
	Text  string     `yaml:"text"`
	Date  *time.Time `yaml:"date"`
}

// Parse читает новости из r. Новость без даты получает дату now.
func Parse(r io.Reader, now time.Time) ([]entities.News, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []entities.News{}, nil
		}
		return nil, fmt.Errorf("%s: %w", errDecodingFile, err)
	}

	news := make([]entities.News, 0, len(file.News))
	for i, item := range file.News {
		title := strings.TrimSpace(item.Title)
		switch {
		case title == "":
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyTitle)
		case utf8.RuneCountInString(title) > entities.MaxTitleLength:
			return nil, fmt.Errorf("item %d: %w", i, ErrTitleTooLong)
		case strings.TrimSpace(item.Text) == "":
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyText)
		}

		date := now
		if item.Date != nil {
			date = *item.Date
		}
		news = append(news, entities.News{Title: title, Text: item.Text, Date: date})
	}

	return news, nil
}
