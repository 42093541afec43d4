package ingest

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the TJ adjustment, in thousandths of an em, at or beyond which
// two kerned pieces are treated as separate words.
const wordGap = 200

// PDFExtractor reads the text layer of a PDF page by page.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract joins each page's text fragments with a single space and
// separates pages with a blank line.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The pdf reader panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([][]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, fragments(pageRuns(page)))
	}

	return joinPages(pages), nil
}

// textRun is the text drawn by one show-text operator, or by several in a
// row with no positioning in between.
type textRun struct {
	x, y float64
	text string
}

// pageRuns walks the page's content streams and collects its text runs in
// drawing order.
func pageRuns(page pdf.Page) []textRun {
	encoders := make(map[string]pdf.TextEncoding)
	for _, name := range page.Fonts() {
		encoders[name] = page.Font(name).Encoder()
	}

	w := &runWalker{encoders: encoders, moved: true}
	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			pdf.Interpret(contents.Index(i), w.op)
		}
	} else {
		pdf.Interpret(contents, w.op)
	}
	return w.runs
}

// runWalker tracks just enough text state to place runs on lines.
type runWalker struct {
	encoders map[string]pdf.TextEncoding
	enc      pdf.TextEncoding
	x, y     float64 // start of the current line
	leading  float64
	moved    bool
	runs     []textRun
}

func (w *runWalker) op(stk *pdf.Stack, op string) {
	args := make([]pdf.Value, stk.Len())
	for i := len(args) - 1; i >= 0; i-- {
		args[i] = stk.Pop()
	}

	switch op {
	case "BT":
		w.x, w.y = 0, 0
		w.moved = true
	case "Tf":
		if len(args) == 2 {
			w.enc = w.encoders[args[0].Name()]
		}
	case "Tm":
		if len(args) == 6 {
			w.x, w.y = args[4].Float64(), args[5].Float64()
			w.moved = true
		}
	case "TL":
		if len(args) == 1 {
			w.leading = args[0].Float64()
		}
	case "TD":
		if len(args) == 2 {
			w.leading = -args[1].Float64()
		}
		fallthrough
	case "Td":
		if len(args) == 2 {
			w.x += args[0].Float64()
			w.y += args[1].Float64()
			w.moved = true
		}
	case "T*":
		w.nextLine()
	case "'", "\"":
		if len(args) == 0 {
			return
		}
		w.nextLine()
		w.show(w.decode(args[len(args)-1].RawString()))
	case "Tj":
		if len(args) == 1 {
			w.show(w.decode(args[0].RawString()))
		}
	case "TJ":
		if len(args) != 1 {
			return
		}
		var sb strings.Builder
		arr := args[0]
		for i := 0; i < arr.Len(); i++ {
			item := arr.Index(i)
			if item.Kind() == pdf.String {
				sb.WriteString(w.decode(item.RawString()))
			} else if item.Float64() <= -wordGap {
				sb.WriteByte(' ')
			}
		}
		w.show(sb.String())
	}
}

func (w *runWalker) nextLine() {
	w.y -= w.leading
	w.moved = true
}

func (w *runWalker) decode(raw string) string {
	if w.enc == nil {
		return raw
	}
	return w.enc.Decode(raw)
}

// show appends text, continuing the previous run when the cursor has not
// been repositioned since it was drawn.
func (w *runWalker) show(text string) {
	if !w.moved && len(w.runs) > 0 {
		w.runs[len(w.runs)-1].text += text
		return
	}
	w.runs = append(w.runs, textRun{x: w.x, y: w.y, text: text})
	w.moved = false
}

// fragments orders runs top to bottom, then left to right, and drops the
// ones that draw only whitespace.
func fragments(runs []textRun) []string {
	ordered := make([]textRun, len(runs))
	copy(ordered, runs)
	sort.SliceStable(ordered, func(i, j int) bool {
		yi, yj := int64(ordered[i].y), int64(ordered[j].y)
		if yi != yj {
			return yi > yj
		}
		return ordered[i].x < ordered[j].x
	})

	out := make([]string, 0, len(ordered))
	for _, r := range ordered {
		if s := strings.Join(strings.Fields(r.text), " "); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// joinPages renders per-page fragments into the final document text.
func joinPages(pages [][]string) string {
	var sb strings.Builder
	for _, frags := range pages {
		sb.WriteString(strings.Join(frags, " "))
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

func (e *PDFExtractor) MIMETypes() []string {
	return []string{MIMETypePDF}
}

func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

func (e *PDFExtractor) Name() string {
	return "pdf"
}
