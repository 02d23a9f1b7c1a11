package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
)

func TestBuildSystemPromptIncludesStoreContext(t *testing.T) {
	svc := NewPromptService(testCatalog())
	svc.now = fixedTime

	prompt := svc.BuildSystemPrompt(&conversation.Session{ID: "s1"}, nil)

	assert.Contains(t, prompt, "TennisShop Pro")
	assert.Contains(t, prompt, "+39 02 1234567")
	assert.Contains(t, prompt, "Racchette")
	assert.Contains(t, prompt, "Wilson")
	assert.Contains(t, prompt, "Rispondi sempre in italiano")
}

func TestBuildSystemPromptItalianDate(t *testing.T) {
	svc := NewPromptService(testCatalog())
	// 2025-03-14 15:30 UTC is a Friday, 16:30 in Rome
	svc.now = fixedTime

	prompt := svc.BuildSystemPrompt(&conversation.Session{ID: "s1"}, nil)

	assert.Contains(t, prompt, "venerdì 14 marzo 2025")
}

func TestBuildSystemPromptIncludesPreferences(t *testing.T) {
	svc := NewPromptService(testCatalog())
	svc.now = fixedTime

	session := &conversation.Session{
		ID: "s1",
		UserPreferences: conversation.UserPreferences{
			Level:  "intermedio",
			Budget: "100to200",
		},
	}

	prompt := svc.BuildSystemPrompt(session, nil)

	assert.Contains(t, prompt, "PREFERENZE DEL CLIENTE")
	assert.Contains(t, prompt, "intermedio")
	assert.Contains(t, prompt, "100to200")
}

func TestBuildSystemPromptNotesActiveFlow(t *testing.T) {
	svc := NewPromptService(testCatalog())
	svc.now = fixedTime

	session := &conversation.Session{
		ID:   "s1",
		Flow: &conversation.FlowState{Type: conversation.FlowSizeGuide, Data: map[string]string{}},
	}

	prompt := svc.BuildSystemPrompt(session, nil)

	assert.Contains(t, prompt, "size_guide")
}

func TestBuildSystemPromptCapsCatalogExcerpt(t *testing.T) {
	info := testCatalog()
	svc := NewPromptService(info)
	svc.now = fixedTime

	prompt := svc.BuildSystemPrompt(&conversation.Session{ID: "s1"}, nil)

	// seven products in the catalog, only the first five in the prompt
	assert.Contains(t, prompt, info.Prodotti[4].Name)
	assert.NotContains(t, prompt, info.Prodotti[5].Name)
}

func TestBuildSystemPromptContextCatalogOverride(t *testing.T) {
	info := testCatalog()
	svc := NewPromptService(info)
	svc.now = fixedTime

	override := []catalog.Product{
		{ID: "x1", Name: "Widget Racket", Price: 75, Category: "racchette", Description: "dal widget"},
	}

	prompt := svc.BuildSystemPrompt(&conversation.Session{ID: "s1"}, override)

	assert.Contains(t, prompt, "Widget Racket")
	assert.NotContains(t, prompt, info.Prodotti[0].Name)
}
