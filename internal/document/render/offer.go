package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/assets"
)

// defaultedOfferFields render as empty strings when absent from the
// payload. Any other placeholder the template references is structural
// and must be supplied by the caller.
var defaultedOfferFields = []string{
	"start_date",
	"end_date",
	"additionalNotes",
	"name",
	"position",
	"salary",
	"department",
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

const offerPageHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Offer Letter</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "{{.FontFamily}}", "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .letterhead img { width: 100%; display: block; }
    .page { padding: 24px 48px 48px; }
    pre.body {
      white-space: pre-wrap;
      font-family: inherit;
      font-size: 14px;
      line-height: 1.6;
      margin-top: {{if .Letterhead}}160px{{else}}48px{{end}};
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
    <pre class="body">{{.Body}}</pre>
  </div>
  <div class="footer">Mak Stark | Confidential</div>
</body>
</html>
`

type offerPageData struct {
	FontFamily string
	Letterhead template.URL
	Body       string
}

type HTMLRenderer struct {
	assets   *assets.Assets
	offerTpl *template.Template
	entryTpl *template.Template
}

func NewRenderer(a *assets.Assets) Renderer {
	return &HTMLRenderer{
		assets:   a,
		offerTpl: template.Must(template.New("offer").Parse(offerPageHTML)),
		entryTpl: template.Must(template.New("entry").Parse(entryPageHTML)),
	}
}

// RenderOffer substitutes entry fields into the loaded offer template, or
// the built-in fallback layout when no template file was present.
func (r *HTMLRenderer) RenderOffer(fields *OfferFields) (string, error) {
	source := r.assets.OfferTemplate
	if source == "" {
		source = fallbackOfferText
	}

	body, err := substitute(source, fields)
	if err != nil {
		return "", err
	}

	// The print pipeline cannot encode the rupee glyph.
	body = strings.ReplaceAll(body, "₹", "Rs.")

	var buf bytes.Buffer
	err = r.offerTpl.Execute(&buf, offerPageData{
		FontFamily: r.assets.FontFamily,
		Letterhead: template.URL(r.assets.LetterheadDataURI),
		Body:       body,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const fallbackOfferText = `Offer Letter

Name: {name}
Position: {position}
Salary: {salary}

We are pleased to offer you the position.
`

func substitute(source string, fields *OfferFields) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(source, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := fields.Get(name); ok {
			return value
		}
		if isDefaultedField(name) {
			return ""
		}
		if missing == "" {
			missing = name
		}
		return match
	})
	if missing != "" {
		return "", fmt.Errorf("unresolved placeholder {%s}: %w", missing, ErrMissingTemplateField)
	}
	return out, nil
}

func isDefaultedField(name string) bool {
	for _, field := range defaultedOfferFields {
		if field == name {
			return true
		}
	}
	return false
}
