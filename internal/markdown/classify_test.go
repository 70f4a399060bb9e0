package markdown

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantRole Role
		wantText string
	}{
		{"h1", "# Title\n", RoleH1, "Title\n"},
		{"h2", "## Sub\n", RoleH2, "Sub\n"},
		{"h3", "### Three\n", RoleH3, "Three\n"},
		{"h6", "###### Six\n", RoleH6, "Six\n"},
		{"seven hashes is text", "####### Seven\n", RoleNone, "####### Seven\n"},
		{"hash without space is text", "#tag\n", RoleNone, "#tag\n"},
		{"heading strips prefix once", "# # inner\n", RoleH1, "# inner\n"},
		{"numbered heading stays a heading", "# 1.Intro\n", RoleH1, "1.Intro\n"},
		{"numbered item stays unordered", "* 1.Intro\n", RoleListItem, "\t•  1.Intro\n"},
		{"star item", "* apples\n", RoleListItem, "\t•  apples\n"},
		{"dash item", "- pears\n", RoleListItem, "\t•  pears\n"},
		{"ordered without space", "1.Item\n", RoleListItem, "\t1. Item\n"},
		{"ordered with space", "12. Item\n", RoleListItem, "\t12. Item\n"},
		{"ordered dot at end of line", "3.\n", RoleListItem, "\t3. \n"},
		{"ordered dot at end of input", "3.", RoleListItem, "\t3. "},
		{"digits without dot", "2024 was a year\n", RoleNone, "2024 was a year\n"},
		{"dot without digits", ".hidden\n", RoleNone, ".hidden\n"},
		{"plain text", "just words\n", RoleNone, "just words\n"},
		{"whitespace only is text", "   \n", RoleNone, "   \n"},
		{"dash rule", "---\n", RoleRule, ""},
		{"underscore rule", "_____\n", RoleRule, ""},
		{"star rule", "***\n", RoleRule, ""},
		{"rule ignores last two characters", "----x\n", RoleRule, ""},
		{"rule at end of input", "---", RoleRule, ""},
		{"broken rule is text", "---a--\n", RoleNone, "---a--\n"},
		{"bold-italic run is text", "***word***\n", RoleNone, "***word***\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyLine(tt.line, "next\n", false)
			if !ok {
				t.Fatalf("ClassifyLine(%q) suppressed the line", tt.line)
			}
			if got.Role != tt.wantRole {
				t.Fatalf("ClassifyLine(%q) role=%v want %v", tt.line, got.Role, tt.wantRole)
			}
			if got.Text != tt.wantText {
				t.Fatalf("ClassifyLine(%q) text=%q want %q", tt.line, got.Text, tt.wantText)
			}
		})
	}
}

func TestClassifyLineBlankCollapsing(t *testing.T) {
	tests := []struct {
		name   string
		next   string
		isLast bool
		keep   bool
	}{
		{"followed by blank survives", "\n", false, true},
		{"followed by content is dropped", "text\n", false, false},
		{"last line is dropped", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyLine("\n", tt.next, tt.isLast)
			if ok != tt.keep {
				t.Fatalf("keep=%v want %v", ok, tt.keep)
			}
			if ok && (got.Role != RoleNone || got.Text != "\n") {
				t.Fatalf("surviving blank = %+v", got)
			}
		})
	}
}

func TestClassifyLineCustomBullet(t *testing.T) {
	got, ok := classifyLine("- item\n", "", true, "-")
	if !ok || got.Text != "\t-  item\n" {
		t.Fatalf("custom bullet = %+v, %v", got, ok)
	}
}

func TestRoleHelpers(t *testing.T) {
	if RoleH4.HeadingLevel() != 4 {
		t.Fatalf("RoleH4 level = %d", RoleH4.HeadingLevel())
	}
	if RoleListItem.HeadingLevel() != 0 {
		t.Fatalf("list item should have no heading level")
	}
	if RoleNone.IsBlock() || !RoleRule.IsBlock() {
		t.Fatalf("IsBlock mismatch")
	}
	if RoleRule.String() != "hr" || RoleH2.String() != "h2" || Role(99).String() != "" {
		t.Fatalf("unexpected role names")
	}
	if StyleBold.String() != "b" || StyleItalic.String() != "i" {
		t.Fatalf("unexpected style names")
	}
}
