package render

import "testing"

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetTUITheme("dark") })
}

func TestGetTUIThemeByName(t *testing.T) {
	tests := []struct {
		name  string
		found bool
	}{
		{"dark", true},
		{"light", true},
		{"tokyonight", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, ok := GetTUIThemeByName(tt.name)
			if ok != tt.found {
				t.Errorf("GetTUIThemeByName(%q) found = %v, want %v", tt.name, ok, tt.found)
			}
			if ok && theme.Name != tt.name {
				t.Errorf("theme.Name = %q, want %q", theme.Name, tt.name)
			}
		})
	}
}

func TestSetTUITheme(t *testing.T) {
	resetTheme(t)

	if !SetTUITheme("light") {
		t.Fatal("SetTUITheme(light) should succeed")
	}
	if GetTUITheme().Name != "light" {
		t.Errorf("active theme = %q, want light", GetTUITheme().Name)
	}
	if IsDarkMode() {
		t.Error("IsDarkMode() should be false after switching to light")
	}

	if SetTUITheme("nonexistent") {
		t.Error("SetTUITheme with unknown name should fail")
	}
	if GetTUITheme().Name != "light" {
		t.Error("failed SetTUITheme should not change the active theme")
	}
}

func TestToggleTUITheme(t *testing.T) {
	resetTheme(t)
	SetTUITheme("dark")

	theme := ToggleTUITheme()
	if theme.Name != "light" {
		t.Errorf("toggle from dark = %q, want light", theme.Name)
	}

	theme = ToggleTUITheme()
	if theme.Name != "dark" {
		t.Errorf("toggle from light = %q, want dark", theme.Name)
	}
}

func TestThemeMarkdownStylePairing(t *testing.T) {
	if DarkTheme.MarkdownStyle != StyleDark {
		t.Errorf("dark theme markdown style = %q, want %q", DarkTheme.MarkdownStyle, StyleDark)
	}
	if LightTheme.MarkdownStyle != StyleLight {
		t.Errorf("light theme markdown style = %q, want %q", LightTheme.MarkdownStyle, StyleLight)
	}
}
