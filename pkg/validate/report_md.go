package validate

import (
	"fmt"
	"strings"
)

// ToMarkdown generates a Markdown-formatted validation report suitable for
// PR comments and documentation.
func (validationResult *ValidationResult) ToMarkdown() string {
	var markdownBuilder strings.Builder

	statusBadge := statusToMarkdownBadge(validationResult.Status)
	fmt.Fprintf(&markdownBuilder, "# Validation Report %s\n\n", statusBadge)

	if s := validationResult.Structure; s != nil {
		markdownBuilder.WriteString("## Structure\n\n")
		markdownBuilder.WriteString("| Metric | Value |\n")
		markdownBuilder.WriteString("|--------|-------|\n")
		fmt.Fprintf(&markdownBuilder, "| **Status** | %s %s |\n", statusBadge, validationResult.Status)
		fmt.Fprintf(&markdownBuilder, "| Preamble | %s |\n", yesNo(s.HasPreamble))
		fmt.Fprintf(&markdownBuilder, "| Chapters | %d / %d |\n", s.TotalChapters, s.ExpectedChapters)
		fmt.Fprintf(&markdownBuilder, "| Parts | %d |\n", s.TotalParts)
		fmt.Fprintf(&markdownBuilder, "| Articles | %d |\n", s.TotalArticles)
		fmt.Fprintf(&markdownBuilder, "| Articles numbered by sequence | %d |\n", s.FallbackArticles)
		fmt.Fprintf(&markdownBuilder, "| Clauses | %d |\n", s.TotalClauses)
		fmt.Fprintf(&markdownBuilder, "| Sub-clauses | %d |\n", s.TotalSubClauses)
		fmt.Fprintf(&markdownBuilder, "| Mini-clauses | %d |\n", s.TotalMiniClauses)
		fmt.Fprintf(&markdownBuilder, "| Schedules | %d / %d |\n", s.TotalSchedules, s.ExpectedSchedules)
		markdownBuilder.WriteString("\n")
	}

	writeIssueTable(&markdownBuilder, "Issues", validationResult.Issues)
	writeIssueTable(&markdownBuilder, "Warnings", validationResult.Warnings)

	return markdownBuilder.String()
}

func writeIssueTable(markdownBuilder *strings.Builder, title string, issues []ValidationIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(markdownBuilder, "## %s\n\n", title)
	markdownBuilder.WriteString("| Category | Severity | Message | Count | Examples |\n")
	markdownBuilder.WriteString("|----------|----------|---------|-------|----------|\n")
	for _, issue := range issues {
		fmt.Fprintf(markdownBuilder, "| %s | %s | %s | %d | %s |\n",
			issue.Category,
			issue.Severity,
			escapeMarkdownTableCell(issue.Message),
			issue.Count,
			escapeMarkdownTableCell(strings.Join(issue.Examples, "; ")))
	}
	markdownBuilder.WriteString("\n")
}

func statusToMarkdownBadge(status ValidationStatus) string {
	switch status {
	case StatusPass:
		return "`PASS`"
	case StatusFail:
		return "`FAIL`"
	case StatusWarn:
		return "`WARN`"
	default:
		return fmt.Sprintf("`%s`", status)
	}
}

// escapeMarkdownTableCell escapes pipe characters in table cell content.
func escapeMarkdownTableCell(content string) string {
	return strings.ReplaceAll(content, "|", "\\|")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
