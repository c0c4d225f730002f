package speech

import (
	"fmt"
	"html"
	"strings"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
)

// englishVoices maps severity to a voice and speaking style so narration
// conveys how serious each clause is.
var englishVoices = map[analysis.Severity][2]string{
	analysis.SeverityHigh:     {"en-US-GuyNeural", "newscast"},
	analysis.SeverityModerate: {"en-US-AriaNeural", "chat"},
	analysis.SeverityInfo:     {"en-US-JennyNeural", "cheerful"},
}

// langVoices is the single narration voice per non-English language.
var langVoices = map[string]string{
	"es":      "es-ES-AlvaroNeural",
	"fr":      "fr-FR-DeniseNeural",
	"it":      "it-IT-DiegoNeural",
	"de":      "de-DE-ConradNeural",
	"pt":      "pt-PT-DuarteNeural",
	"ta":      "ta-IN-ValluvarNeural",
	"zh-Hans": "zh-CN-YunxiNeural",
}

const defaultVoice = "en-US-JennyNeural"

// BuildSSML renders the summary followed by each risk clause as an SSML
// document. An empty risk list is narrated as the canonical "no risks" text.
func BuildSSML(summary string, risks []analysis.RiskEntry, targetLang string) string {
	var body strings.Builder

	summaryVoice := defaultVoice
	summaryStyle := "general"
	if targetLang != "en" {
		if v, ok := langVoices[targetLang]; ok {
			summaryVoice = v
		}
		summaryStyle = ""
	}
	body.WriteString(wrapVoice(html.EscapeString(summary), summaryVoice, summaryStyle))

	if len(risks) == 0 {
		risks = []analysis.RiskEntry{{Text: analysis.NoRiskText, Severity: analysis.SeverityInfo}}
	}
	for _, r := range risks {
		body.WriteString(wrapClause(r.Text, r.Severity, targetLang))
	}

	return fmt.Sprintf(`<speak version="1.0" xml:lang="en-US"
       xmlns:mstts="http://www.w3.org/2001/mstts"
       xmlns="http://www.w3.org/2001/10/synthesis">
%s
</speak>`, body.String())
}

func wrapClause(text string, severity analysis.Severity, lang string) string {
	escaped := html.EscapeString(text)
	if lang == "en" {
		voice, ok := englishVoices[severity]
		if !ok {
			voice = englishVoices[analysis.SeverityInfo]
		}
		return wrapVoice(escaped, voice[0], voice[1])
	}
	narrator, ok := langVoices[lang]
	if !ok {
		narrator = defaultVoice
	}
	return wrapVoice(escaped, narrator, "")
}

func wrapVoice(text, voice, style string) string {
	prosody := fmt.Sprintf(`<prosody rate="medium" pitch="default">%s</prosody>`, text)
	if style != "" {
		return fmt.Sprintf(`<voice name="%s"><mstts:express-as style="%s">%s</mstts:express-as></voice>`,
			voice, style, prosody)
	}
	return fmt.Sprintf(`<voice name="%s">%s</voice>`, voice, prosody)
}
