// Package rules содержит правила видимости заметок и назначения slug.
package rules

import (
	"newsnotes/internal/access"
	"newsnotes/internal/notes/domain/entities"
)

// OwnerListing оставляет только заметки who. Аноним не видит ничего.
func OwnerListing(notes []entities.Note, who access.Identity) []entities.Note {
	owned := make([]entities.Note, 0, len(notes))
	if who.IsAnonymous() {
		return owned
	}
	for _, note := range notes {
		if who.Owns(note.AuthorID) {
			owned = append(owned, note)
		}
	}
	return owned
}
