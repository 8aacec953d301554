package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskboard/pkg/translator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInitTranslator_LoadsSupportedLanguages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "en.toml", `taskNotFound = "Task not found"`)
	writeFile(t, dir, "fr.toml", `taskNotFound = "Tâche introuvable"`)
	writeFile(t, dir, "de.toml", `taskNotFound = "Aufgabe nicht gefunden"`)
	writeFile(t, dir, "README.md", "not a translation")

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	msg, err := translator.Localize(translator.LanguageFr, "taskNotFound")
	require.NoError(t, err)
	assert.Equal(t, "Tâche introuvable", msg)

	msg, err = translator.Localize("de", "taskNotFound")
	require.NoError(t, err)
	assert.Equal(t, "Task not found", msg)
}

func TestInitTranslator_ShippedFilesHaveSameKeys(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	for _, id := range []string{"invalidTaskPayload", "taskNotFound", "emptyDescription", "failSuggestPriority"} {
		en, err := translator.Localize(translator.LanguageEn, id)
		require.NoError(t, err)
		fr, err := translator.Localize(translator.LanguageFr, id)
		require.NoError(t, err)
		assert.NotEqual(t, en, fr, id)
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})

	_, err := translator.Localize(translator.LanguageEn, "taskNotFound")
	assert.Error(t, err)
}
