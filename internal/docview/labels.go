package docview

// Labels holds every user-facing string of the session view. The
// service ships a bilingual UI, so the set exists in English and
// Vietnamese; the active one is picked from config at startup.
type Labels struct {
	Summary string
	Clauses string
	Chat    string

	LoadingDocument string
	LoadingSummary  string
	LoadingClauses  string
	Thinking        string

	NotFound string
	Page     string
	Of       string

	ChatPlaceholder string
	EmptyTranscript string
	NoClauses       string
	You             string
	Assistant       string

	RetryHint  string
	PagerHint  string
	TabHint    string
	ReloadHint string
	QuitHint   string
}

// ForLanguage returns the label set for a language code. Anything
// other than "vi" falls back to English.
func ForLanguage(lang string) Labels {
	if lang == "vi" {
		return vietnameseLabels
	}
	return englishLabels
}

var englishLabels = Labels{
	Summary: "Overall Summary",
	Clauses: "Clauses",
	Chat:    "Chat",

	LoadingDocument: "Loading document...",
	LoadingSummary:  "Loading summary...",
	LoadingClauses:  "Extracting clauses...",
	Thinking:        "Thinking...",

	NotFound: "Document not found",
	Page:     "Page",
	Of:       "of",

	ChatPlaceholder: "Ask a question about the document...",
	EmptyTranscript: "No questions yet.",
	NoClauses:       "No clauses extracted.",
	You:             "You",
	Assistant:       "Assistant",

	RetryHint:  "press r to retry",
	PagerHint:  "←/→ page",
	TabHint:    "tab switch",
	ReloadHint: "ctrl+r reload",
	QuitHint:   "q quit",
}

var vietnameseLabels = Labels{
	Summary: "Tóm tắt chung",
	Clauses: "Điều khoản",
	Chat:    "Hỏi đáp",

	LoadingDocument: "Đang tải tài liệu...",
	LoadingSummary:  "Đang tải tóm tắt...",
	LoadingClauses:  "Đang trích xuất điều khoản...",
	Thinking:        "Đang suy nghĩ...",

	NotFound: "Không tìm thấy tài liệu",
	Page:     "Trang",
	Of:       "trên",

	ChatPlaceholder: "Đặt câu hỏi về tài liệu...",
	EmptyTranscript: "Chưa có câu hỏi nào.",
	NoClauses:       "Chưa trích xuất được điều khoản nào.",
	You:             "Bạn",
	Assistant:       "Trợ lý",

	RetryHint:  "nhấn r để thử lại",
	PagerHint:  "←/→ trang",
	TabHint:    "tab chuyển mục",
	ReloadHint: "ctrl+r tải lại",
	QuitHint:   "q thoát",
}
