package apierrors_test

import (
	"os"
	"testing"

	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	translator.Translator.MustAddMessages(language.English, &i18n.Message{ID: apierrors.MsgTaskNotFound, Other: "Task not found"})
	translator.Translator.MustAddMessages(language.French, &i18n.Message{ID: apierrors.MsgTaskNotFound, Other: "Tâche introuvable"})
	os.Exit(m.Run())
}

func TestCreateError_TranslatesMessage(t *testing.T) {
	err := apierrors.CreateError(404, apierrors.MsgTaskNotFound, translator.LanguageFr)
	assert.Equal(t, 404, err.ErrDetails.Code)
	assert.Equal(t, "Tâche introuvable", err.ErrDetails.Message)
}

func TestGetTransErrorMsg_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Task not found", apierrors.GetTransErrorMsg(apierrors.MsgTaskNotFound, "es"))
}

func TestGetTransErrorMsg_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "unknown_key", apierrors.GetTransErrorMsg("unknown_key", translator.LanguageEn))
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, apierrors.MsgTaskNotFound, translator.LanguageEn)
	assert.Equal(t, "Code: 500, Message: Task not found", err.Error())
}
