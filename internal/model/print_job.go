package model

// MaxPrintTextLength bounds the payload accepted for a single label.
const MaxPrintTextLength = 1000

// PrintJob is a single print request bound for a label printer. It is
// constructed per HTTP request, consumed by the command builder and the
// device session, and never persisted.
type PrintJob struct {
	CodeType string            `json:"codeType"`
	Options  map[string]string `json:"options"`
	Text     string            `json:"text"`
	Host     string            `json:"ip"`
	Port     int               `json:"port"`
}
