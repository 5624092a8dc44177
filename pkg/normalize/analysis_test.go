package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"modboard/pkg/models"
)

func TestAnalysisLegacyFieldNamesAndCoercions(t *testing.T) {
	raw := map[string]interface{}{
		"safemsg":  "False",
		"isover":   float64(1),
		"needpriv": float64(0),
	}
	flags := Analysis(raw, models.AnalysisDefaults{Safe: true})
	assert.False(t, flags.Safe)
	assert.True(t, flags.Complete)
	assert.False(t, flags.NeedsAnonymity)
	assert.False(t, flags.Abnormal)
}

func TestAnalysisNativeBooleansPassThrough(t *testing.T) {
	raw := map[string]interface{}{
		"safe":            true,
		"complete":        false,
		"needs_anonymity": true,
		"abnormal":        false,
	}
	flags := Analysis(raw, models.AnalysisDefaults{Complete: true, Abnormal: true})
	assert.True(t, flags.Safe)
	assert.False(t, flags.Complete)
	assert.True(t, flags.NeedsAnonymity)
	assert.False(t, flags.Abnormal)
}

func TestAnalysisStringCoercionIsTrimmedCaseInsensitive(t *testing.T) {
	raw := map[string]interface{}{"safe": "  TRUE  ", "abnormal": "yes"}
	flags := Analysis(raw, models.AnalysisDefaults{})
	assert.True(t, flags.Safe)
	// non-"true" strings are false, not the fallback
	assert.False(t, flags.Abnormal)
}

func TestAnalysisMissingFieldsTakeDefaults(t *testing.T) {
	defaults := models.AnalysisDefaults{Safe: true, Complete: true, NeedsAnonymity: false, Abnormal: true}
	flags := Analysis(map[string]interface{}{}, defaults)
	assert.True(t, flags.Safe)
	assert.True(t, flags.Complete)
	assert.False(t, flags.NeedsAnonymity)
	assert.True(t, flags.Abnormal)
	assert.Equal(t, 0, flags.SelectedMessageCount)
}

func TestAnalysisNonObjectInputTakesDefaults(t *testing.T) {
	defaults := models.AnalysisDefaults{Safe: true}
	assert.Equal(t, true, Analysis(nil, defaults).Safe)
	assert.Equal(t, true, Analysis("garbage", defaults).Safe)
	assert.Equal(t, true, Analysis([]interface{}{1}, defaults).Safe)
}

func TestAnalysisSelectedMessageCount(t *testing.T) {
	raw := map[string]interface{}{"messages": []interface{}{1, 2, 3}}
	assert.Equal(t, 3, Analysis(raw, models.AnalysisDefaults{}).SelectedMessageCount)

	raw2 := map[string]interface{}{"messages": "not a list"}
	assert.Equal(t, 0, Analysis(raw2, models.AnalysisDefaults{}).SelectedMessageCount)
}

func TestAnalysisUnusableTypesFallBack(t *testing.T) {
	raw := map[string]interface{}{"safe": map[string]interface{}{}, "complete": nil}
	flags := Analysis(raw, models.AnalysisDefaults{Safe: true, Complete: true})
	assert.True(t, flags.Safe)
	assert.True(t, flags.Complete)
}
