package render

import (
	"bytes"
	"html/template"
)

// deliverableColumnWidth is the character budget of the deliverable name
// column. Longer names wrap onto continuation rows at this boundary.
const deliverableColumnWidth = 40

// EntryInput is the normalized view rendered into the project-entry
// document. Money values arrive pre-formatted.
type EntryInput struct {
	InvoiceNumber string
	InvoiceDate   string
	EventCode     string

	ClientName    string
	ClientContact string
	ClientEmail   string
	EventName     string

	EventType      string
	EventStartDate string
	EventEndDate   string

	BaseAmount      string
	DiscountPercent string
	DiscountAmount  string
	Subtotal        string
	TaxAmount       string
	FinalAmount     string

	Deliverables []DeliverableRow

	Timeline            string
	EstimatedCompletion string
	Terms               string
	AdditionalNotes     string
	PointOfContact      string
	Referral            string

	Letterhead template.URL
	FontFamily string
}

// DeliverableRow is one printed table row. The first row of a deliverable
// carries the Included status; continuation rows from wrapping leave it
// empty.
type DeliverableRow struct {
	Name   string
	Status string
}

// DeliverableRows wraps each deliverable name at the fixed column width.
// Splitting happens at character boundaries, not word boundaries, to keep
// the bordered table aligned.
func DeliverableRows(names []string) []DeliverableRow {
	rows := make([]DeliverableRow, 0, len(names))
	for _, name := range names {
		status := "Included"
		remaining := []rune(name)
		for {
			if len(remaining) <= deliverableColumnWidth {
				rows = append(rows, DeliverableRow{Name: string(remaining), Status: status})
				break
			}
			rows = append(rows, DeliverableRow{Name: string(remaining[:deliverableColumnWidth]), Status: status})
			remaining = remaining[deliverableColumnWidth:]
			status = ""
		}
	}
	return rows
}

const entryPageHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Project Details {{.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "{{.FontFamily}}", "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
      font-size: 13px;
      line-height: 1.5;
    }
    .letterhead img { width: 100%; display: block; }
    .page { padding: 24px 48px 64px; }
    h1 {
      font-size: 18px;
      letter-spacing: 0.06em;
      text-align: center;
      margin-bottom: 4px;
    }
    .subtitle { text-align: center; color: #6b7280; margin-bottom: 24px; }
    .section { margin-bottom: 20px; }
    .section h2 {
      font-size: 13px;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      border-bottom: 1px solid #e5e7eb;
      padding-bottom: 4px;
    }
    table { width: 100%; border-collapse: collapse; }
    .deliverables td, .deliverables th {
      border: 1px solid #111827;
      padding: 6px 10px;
      font-family: "Courier New", monospace;
      font-size: 12px;
      text-align: left;
    }
    .financial td { padding: 4px 10px; }
    .financial td:last-child { text-align: right; }
    .financial tr.total td {
      border-top: 1px solid #111827;
      font-weight: bold;
    }
    pre.block {
      white-space: pre-wrap;
      font-family: inherit;
      margin: 0;
    }
    .footer {
      position: fixed;
      bottom: 12px;
      left: 0;
      right: 0;
      text-align: center;
      font-size: 11px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  {{if .Letterhead}}<div class="letterhead"><img src="{{.Letterhead}}" alt="" /></div>{{end}}
  <div class="page">
    <h1>MAK STARK CREATIVE AGENCY</h1>
    <div class="subtitle">Project Details &amp; Invoice</div>

    <div class="section">
      <table>
        <tr><td>Invoice Number: <strong>{{.InvoiceNumber}}</strong></td><td>Event Code: {{.EventCode}}</td><td>Date: {{.InvoiceDate}}</td></tr>
      </table>
    </div>

    <div class="section">
      <h2>Client Information</h2>
      <div>Name: {{.ClientName}}</div>
      <div>Contact: {{.ClientContact}}</div>
      <div>Email: {{.ClientEmail}}</div>
      <div>Event: {{.EventName}}</div>
    </div>

    <div class="section">
      <h2>Event Details</h2>
      <div>Type: {{.EventType}}</div>
      <div>Start Date: {{.EventStartDate}}</div>
      <div>End Date: {{.EventEndDate}}</div>
    </div>

    <div class="section">
      <h2>Financial Breakdown</h2>
      <table class="financial">
        <tr><td>Base Amount</td><td>{{.BaseAmount}}</td></tr>
        <tr><td>Discount ({{.DiscountPercent}}%)</td><td>-{{.DiscountAmount}}</td></tr>
        <tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
        <tr><td>GST (18%)</td><td>{{.TaxAmount}}</td></tr>
        <tr class="total"><td>Final Amount</td><td>{{.FinalAmount}}</td></tr>
      </table>
    </div>

    <div class="section">
      <h2>Deliverables</h2>
      <table class="deliverables">
        <tr><th>Deliverable</th><th>Status</th></tr>
        {{range .Deliverables}}
        <tr><td>{{.Name}}</td><td>{{.Status}}</td></tr>
        {{end}}
      </table>
    </div>

    <div class="section">
      <h2>Project Timeline</h2>
      <pre class="block">{{.Timeline}}</pre>
      <div>Estimated Completion: {{.EstimatedCompletion}}</div>
    </div>

    <div class="section">
      <h2>Terms &amp; Conditions</h2>
      <pre class="block">{{.Terms}}</pre>
    </div>

    {{if .AdditionalNotes}}
    <div class="section">
      <h2>Additional Notes</h2>
      <pre class="block">{{.AdditionalNotes}}</pre>
    </div>
    {{end}}

    <div class="section">
      <div>Point of Contact: {{.PointOfContact}}</div>
      <div>Referral: {{if .Referral}}{{.Referral}}{{else}}Direct Client{{end}}</div>
    </div>
  </div>
  <div class="footer">Generated by Mak Stark Dashboard System | Confidential</div>
</body>
</html>
`

// RenderEntry builds the itemized project-entry document.
func (r *HTMLRenderer) RenderEntry(input EntryInput) (string, error) {
	input.Letterhead = template.URL(r.assets.LetterheadDataURI)
	input.FontFamily = r.assets.FontFamily

	var buf bytes.Buffer
	if err := r.entryTpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}
