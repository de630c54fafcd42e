package desk

const (
	MsgSelectTemplate  = "Please select a template first"
	MsgFillAllFields   = "Please fill all fields"
	MsgFillFieldsFirst = "Please fill all fields first"
	MsgNoDraftToPDF    = "No draft to download"
	MsgNoDraftToEmail  = "Generate draft first"
	MsgInvalidEmail    = "Enter valid email address"
	MsgHistoryEmpty    = "No notices saved yet. Generate and save one!"

	MsgTemplateLoaded = "✅ Template loaded successfully!"
	MsgSavedFmt       = "✅ Notice saved! ID: %s"
	MsgPDFDownloaded  = "✅ PDF Downloaded Successfully!"
	MsgEmailSentFmt   = "✅ Email sent to %s!"
	MsgLoadingFmt     = "Loading notice %s... (Full feature coming soon)"

	MsgTemplateFailedFmt = "Template failed: %s"
	MsgGenerateFailedFmt = "Failed to generate draft: %s"
	MsgSaveFailed        = "Failed to save notice"
	MsgHistoryFailed     = "Failed to load history"
	MsgPDFFailedFmt      = "PDF failed: %s"
	MsgEmailFailedFmt    = "Email failed: %s"

	fallbackTemplateNotFound = "Template not found"
	fallbackGeneration       = "Generation failed"
)
