// Package templates встраивает HTML шаблоны обоих приложений в бинарный файл.
package templates

import "embed"

// FS содержит макеты и страницы.
//
//go:embed layouts errors auth news notes
var FS embed.FS
