package mappings

import "strings"

// languageCodes maps ISO 639-2 (three-letter) codes to ISO 639-1.
// Bibliographic variants are included where they differ from the
// terminological code (fre/fra, ger/deu, ...).
var languageCodes = map[string]string{
	"ara": "ar",
	"ben": "bn",
	"bul": "bg",
	"ces": "cs", "cze": "cs",
	"dan": "da",
	"deu": "de", "ger": "de",
	"ell": "el", "gre": "el",
	"eng": "en",
	"est": "et",
	"fas": "fa", "per": "fa",
	"fin": "fi",
	"fra": "fr", "fre": "fr",
	"heb": "he",
	"hin": "hi",
	"hrv": "hr",
	"hun": "hu",
	"ind": "id",
	"isl": "is", "ice": "is",
	"ita": "it",
	"jpn": "ja",
	"kor": "ko",
	"lav": "lv",
	"lit": "lt",
	"msa": "ms", "may": "ms",
	"nld": "nl", "dut": "nl",
	"nor": "no",
	"pol": "pl",
	"por": "pt",
	"ron": "ro", "rum": "ro",
	"rus": "ru",
	"slk": "sk", "slo": "sk",
	"slv": "sl",
	"spa": "es",
	"srp": "sr",
	"swa": "sw",
	"swe": "sv",
	"tha": "th",
	"tur": "tr",
	"ukr": "uk",
	"urd": "ur",
	"vie": "vi",
	"zho": "zh", "chi": "zh",
}

// languageNativeNames holds native display names for the more common
// languages; lookups fall back to the English name when absent.
var languageNativeNames = map[string]string{
	"ar": "العربية",
	"bn": "বাংলা",
	"de": "Deutsch",
	"el": "Ελληνικά",
	"en": "English",
	"es": "Español",
	"fa": "فارسی",
	"fi": "Suomi",
	"fr": "Français",
	"he": "עברית",
	"hi": "हिन्दी",
	"id": "Bahasa Indonesia",
	"is": "Íslenska",
	"it": "Italiano",
	"ja": "日本語",
	"ko": "한국어",
	"nl": "Nederlands",
	"no": "Norsk",
	"pl": "Polski",
	"pt": "Português",
	"ru": "Русский",
	"sv": "Svenska",
	"th": "ไทย",
	"tr": "Türkçe",
	"uk": "Українська",
	"vi": "Tiếng Việt",
	"zh": "中文",
}

// LanguageToISO1 translates an ISO 639-2 code (or an already two-letter
// 639-1 code) into ISO 639-1. The empty string means no mapping exists.
func LanguageToISO1(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if len(c) == 2 {
		return c
	}
	return languageCodes[c]
}

// LanguageNativeName returns the native display name for an ISO 639-1 code,
// or the given fallback when none is known.
func LanguageNativeName(iso1, fallback string) string {
	if native, ok := languageNativeNames[strings.ToLower(iso1)]; ok {
		return native
	}
	return fallback
}
