package i18n

// Translator retrieves localized messages for mismatch codes. data provides
// optional metadata to embed in the message (for example, "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			if k := data["key"]; k != "" {
				return "キー '" + k + "' は必須です"
			}
			return "必須キーが不足しています"
		case "length_mismatch":
			return "長さが一致しません"
		case "strict_mode":
			return "strict モードでは単一値のリスト変換は無効です"
		case "check_failed":
			if h := data["hook"]; h != "" {
				return h + " が false を返しました"
			}
			return "検査が false を返しました"
		case "recursive_value":
			return "再帰的な値は有限の結果を生成できません"
		case "no_alternative":
			return "どの候補にも一致しません"
		case "invalid_key":
			return "キーとして使用できません"
		case "never":
			return "何にも一致しません"
		case "not_a_type":
			return "型ではありません"
		case "not_a_subtype":
			if b := data["base"]; b != "" {
				return b + " のサブタイプである必要があります"
			}
			return "サブタイプではありません"
		case "expected_null":
			return "null のみ一致します"
		case "expected_notnull":
			return "null は一致しません"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			if k := data["key"]; k != "" {
				return "key '" + k + "' is required"
			}
			return "required key missing"
		case "length_mismatch":
			return "length mismatch"
		case "strict_mode":
			return "strict mode disables auto-wrap of a single value"
		case "check_failed":
			if h := data["hook"]; h != "" {
				return h + " returned false"
			}
			return "check returned false"
		case "recursive_value":
			return "recursive value cannot produce a finite result"
		case "no_alternative":
			return "no alternative matched"
		case "invalid_key":
			return "cannot be used as a key"
		case "never":
			return "matches nothing"
		case "not_a_type":
			return "not a type"
		case "not_a_subtype":
			if b := data["base"]; b != "" {
				return "must be a subtype of " + b
			}
			return "not a subtype"
		case "expected_null":
			return "only null matches"
		case "expected_notnull":
			return "null does not match"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
