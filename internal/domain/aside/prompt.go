package aside

import (
	"fmt"
	"strings"
)

// Legend is the fixed list of replies the prompt offers.
var Legend = []string{
	"Type 'y' to capture all",
	"Type 'n' to skip all",
	"Type 'edit' to modify before capture",
	"Type '1 only' to capture only item 1",
	"Type '2 to P003' to change item 2 destination",
}

// FormatPrompt renders the confirmation prompt. It returns an empty string
// when there is nothing to confirm.
func FormatPrompt(asides []Aside) string {
	if len(asides) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("📋 Detected Potential Asides:\n")
	for i, a := range asides {
		fmt.Fprintf(&b, "%d. \"%s\"\n", i+1, a.Text)
		fmt.Fprintf(&b, "   → Type: %s\n", a.Type.Label())
	}
	b.WriteString("\nActions:\n")
	for _, line := range Legend {
		b.WriteString("   - " + line + "\n")
	}
	return b.String()
}
