package pyimports

import (
	"fmt"
	"io"
	"strings"
)

// Write renders the report: one section per category with modules sorted by
// descending count, followed by a summary. The local section is only shown
// on request.
func (r Report) Write(w io.Writer, showLocal bool) error {
	categories := []Category{CategoryThirdParty, CategoryUnknown, CategoryStdlib}
	if showLocal {
		categories = append(categories, CategoryLocal)
	}

	for _, category := range categories {
		modules := r.Categories[category]
		if len(modules) == 0 {
			continue
		}
		label := strings.ToUpper(string(category))
		if _, err := fmt.Fprintf(w, "\n# %d unique %s modules:\n", len(modules), label); err != nil {
			return err
		}
		for _, mc := range modules {
			if _, err := fmt.Fprintf(w, "%-30s %d\n", mc.Module, mc.Count); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n# SUMMARY:\nParsed %d Python files in %.2f seconds\n",
		r.FileCount, r.Elapsed.Seconds())
	return err
}
