package leads

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

var mailTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"join":   strings.Join,
	"rupees": formatRupees,
}).ParseFS(templateFiles, "templates/*.html"))

// ist is India Standard Time. A fixed zone avoids depending on tzdata.
var ist = time.FixedZone("IST", 5*60*60+30*60)

type mailData struct {
	Form        any
	FormName    string
	Product     productInfo
	Admin       string
	SubmittedAt string
}

func render(name string, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func submittedAt(t time.Time) string {
	return t.In(ist).Format("2/1/2006, 3:04:05 pm")
}

// formatRupees groups digits the Indian way: 1,50,000.
func formatRupees(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}
