package diag

import "fmt"

// Diagnostic is one structured record emitted by an engine. Subject
// names the entity the record is about: a type constructor, a
// hypothesis, or a printed term. Message text is best-effort and not
// part of any contract.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s[%s] %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s[%s] %s: %s", d.Severity, d.Code, d.Subject, d.Message)
}
