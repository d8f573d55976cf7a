package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Well-known field keys shared by the built-in template, the document
// assembler and the snapshot format.
const (
	FieldType            = "type"
	FieldSummary         = "summary"
	FieldAlias           = "alias"
	FieldEmails          = "emails"
	FieldWebsites        = "websites"
	FieldIPs             = "ips"
	FieldLocations       = "locations"
	FieldStarted         = "started"
	FieldAmount          = "amount"
	FieldBankInfo        = "bank_info"
	FieldOtherPayments   = "other_payments"
	FieldScammerNames    = "scammer_names"
	FieldScammerRealName = "scammer_real_name"
	FieldRemarks         = "remarks"
	FieldFilenameName    = "filename_name"
	FieldReportNumber    = "report_number"
)

type ValueKind int

const (
	KindText ValueKind = iota
	KindList
	KindPayments
)

// PaymentRecord is a single non-bank payment method entry.
type PaymentRecord struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

// FieldValue is a tagged union over the value shapes a report field can
// hold: plain text, an ordered string list, or a list of payment records.
// It marshals to the same JSON shapes the snapshot format uses (bare
// string, array of strings, array of objects).
type FieldValue struct {
	kind     ValueKind
	text     string
	list     []string
	payments []PaymentRecord
}

func Text(s string) FieldValue {
	return FieldValue{kind: KindText, text: s}
}

func List(items ...string) FieldValue {
	return FieldValue{kind: KindList, list: items}
}

func Payments(records ...PaymentRecord) FieldValue {
	return FieldValue{kind: KindPayments, payments: records}
}

func (v FieldValue) Kind() ValueKind { return v.kind }

// Text returns the textual form of the value. For lists this is the first
// element, matching how the original form treated single-valued lists.
func (v FieldValue) Text() string {
	switch v.kind {
	case KindList:
		if len(v.list) > 0 {
			return v.list[0]
		}
		return ""
	case KindPayments:
		return ""
	default:
		return v.text
	}
}

func (v FieldValue) List() []string {
	switch v.kind {
	case KindList:
		return v.list
	case KindText:
		if v.text == "" {
			return nil
		}
		return []string{v.text}
	default:
		return nil
	}
}

func (v FieldValue) Payments() []PaymentRecord {
	return v.payments
}

func (v FieldValue) IsEmpty() bool {
	switch v.kind {
	case KindText:
		return strings.TrimSpace(v.text) == ""
	case KindList:
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	case KindPayments:
		return len(v.payments) == 0
	}
	return true
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindPayments:
		if v.payments == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.payments)
	default:
		return json.Marshal(v.text)
	}
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Text(text)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = List(list...)
		return nil
	}

	var records []PaymentRecord
	if err := json.Unmarshal(data, &records); err == nil {
		*v = Payments(records...)
		return nil
	}

	return fmt.Errorf("unsupported field value shape: %s", string(data))
}

// ReportContent maps field keys to their values. Absent optional fields are
// omitted from the map, never stored as empty placeholders.
type ReportContent map[string]FieldValue

func (c ReportContent) Text(key string) string {
	return c[key].Text()
}

func (c ReportContent) List(key string) []string {
	return c[key].List()
}

func (c ReportContent) Has(key string) bool {
	v, ok := c[key]
	return ok && !v.IsEmpty()
}

// MainAlias returns the first alias, used for the document title and for
// filename generation.
func (c ReportContent) MainAlias() string {
	if aliases := c.List(FieldAlias); len(aliases) > 0 && strings.TrimSpace(aliases[0]) != "" {
		return aliases[0]
	}
	return "Unknown"
}

// Clone returns a shallow copy safe to amend without touching the original.
func (c ReportContent) Clone() ReportContent {
	out := make(ReportContent, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
