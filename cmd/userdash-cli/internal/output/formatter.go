package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/userdash/internal/domain"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ValidFormat reports whether format is one the formatter understands.
func ValidFormat(format string) bool {
	return format == FormatTable || format == FormatJSON
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Profile writes a profile as aligned label/value lines.
func Profile(w io.Writer, p *domain.UserProfile) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Username", p.Username},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Website", p.Website},
		{"Address", strings.Join([]string{p.Address.Street, p.Address.Suite, p.Address.City, p.Address.Zipcode}, ", ")},
		{"Company", p.Company.Name},
		{"Catch phrase", p.Company.CatchPhrase},
		{"BS", p.Company.BS},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// Activities writes one table row per activity in the order given.
func Activities(w io.Writer, activities []domain.UserActivity) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCONTENT")
	fmt.Fprintln(tw, "--\t-----\t-------")

	if len(activities) == 0 {
		fmt.Fprintln(tw, "No activities found")
	}
	for _, a := range activities {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", a.ID, truncateString(a.Title, 40), truncateString(oneLine(a.Content), 50))
	}
	return tw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateString shortens s to at most maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
