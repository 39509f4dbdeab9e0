package readme

import (
	"fmt"
	"unicode/utf8"

	"readmearchitect/internal/domain/entity"
)

// Strings at least this long found in a shallow scan are taken as the README.
const minScannedLength = 100

// Strategy tries to locate the README in an envelope. It returns "" when the
// shape it knows is absent.
type Strategy struct {
	Name    string
	Extract func(env entity.Envelope) string
}

// Strategies are tried in order; the first non-empty result wins.
var Strategies = []Strategy{
	{Name: "nested_outputs", Extract: fromNestedOutputs},
	{Name: "results", Extract: fromResults},
	{Name: "text", Extract: fromText},
	{Name: "message", Extract: fromMessage},
	{Name: "shallow_scan", Extract: fromShallowScan},
}

// Extract returns the README text found in env. It never fails: when no
// strategy matches it returns a diagnostic document titled with projectName
// that embeds the whole envelope.
func Extract(env entity.Envelope, projectName string) string {
	text, _ := ExtractWith(env, projectName)
	return text
}

// ExtractWith is Extract that also reports which strategy produced the text,
// or "diagnostic" for the fallback document.
func ExtractWith(env entity.Envelope, projectName string) (string, string) {
	for _, s := range Strategies {
		if text := s.Extract(env); text != "" {
			return text, s.Name
		}
	}
	return Diagnostic(env, projectName), "diagnostic"
}

// Diagnostic is the stand-in document used when nothing could be extracted.
func Diagnostic(env entity.Envelope, projectName string) string {
	return fmt.Sprintf("# %s\n\nLangflow Response:\n%s", projectName, env.String())
}

func firstOutput(env entity.Envelope) entity.Envelope {
	return env.Field("outputs").Index(0)
}

// outputs[0].outputs[0].results.message.text
func fromNestedOutputs(env entity.Envelope) string {
	return firstOutput(env).Field("outputs").Index(0).Path("results", "message", "text").Text()
}

// outputs[0].results.message.text
func fromResults(env entity.Envelope) string {
	return firstOutput(env).Path("results", "message", "text").Text()
}

// outputs[0].text
func fromText(env entity.Envelope) string {
	return firstOutput(env).Field("text").Text()
}

// outputs[0].message, either {"text": ...} or a bare value.
func fromMessage(env entity.Envelope) string {
	msg := firstOutput(env).Field("message")
	if msg.IsObject() {
		return msg.Field("text").Text()
	}
	return msg.String()
}

// First sufficiently long string field of any output entry.
func fromShallowScan(env entity.Envelope) string {
	outputs, ok := env.Field("outputs").List()
	if !ok {
		return ""
	}
	for _, out := range outputs {
		for _, key := range out.Keys() {
			v := out.Field(key)
			if s, isString := v.Raw().(string); isString && utf8.RuneCountInString(s) > minScannedLength {
				return s
			}
		}
	}
	return ""
}
