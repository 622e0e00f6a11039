package diag

// Reporter is the minimal contract engines use to emit diagnostics.
// Implementations: BagReporter (stores into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, subject, msg string)
}

// BagReporter writes every record into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, subject, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Subject: subject, Message: msg})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string) {}

// Info emits an informational record.
func Info(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevInfo, subject, msg)
	}
}

// Warn emits a warning record.
func Warn(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevWarning, subject, msg)
	}
}

// Error emits an error record.
func Error(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevError, subject, msg)
	}
}
