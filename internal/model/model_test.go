package model

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/debemdeboas/notice-desk/internal/config"
)

func TestParseParty(t *testing.T) {
	testCases := []struct {
		name  string
		block string
		want  Party
	}{
		{
			name:  "Name with two address lines",
			block: "Name\nLine1\nLine2",
			want:  Party{Name: "Name", Address: "Line1, Line2"},
		},
		{
			name:  "Name only",
			block: "ABC Pvt Ltd",
			want:  Party{Name: "ABC Pvt Ltd", Address: ""},
		},
		{
			name:  "CRLF from a browser textarea",
			block: "XYZ Pvt Ltd\r\n12 MG Road\r\nMumbai",
			want:  Party{Name: "XYZ Pvt Ltd", Address: "12 MG Road, Mumbai"},
		},
		{
			name:  "Name is trimmed, address lines are not",
			block: "  Ravi Kumar  \n Flat 4 \nDelhi",
			want:  Party{Name: "Ravi Kumar", Address: " Flat 4 , Delhi"},
		},
		{
			name:  "Empty block",
			block: "",
			want:  Party{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseParty(tc.block)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseParty(%q) mismatch (-want +got):\n%s", tc.block, diff)
			}
		})
	}

	t.Run("Parsing the rendered form again is stable", func(t *testing.T) {
		first := ParseParty("Name\nLine1\nLine2")
		second := ParseParty("Name\nLine1\nLine2")
		if first != second {
			t.Errorf("Expected identical results, got %+v and %+v", first, second)
		}
	})
}

func TestTemplateLabel(t *testing.T) {
	testCases := map[string]string{
		"demand-letter":   "Demand Letter",
		"eviction-notice": "Eviction Notice",
		"498a-false":      "498a False",
		"cheque-bounce":   "Cheque Bounce",
		"rent":            "Rent",
		"":                "",
	}

	for id, want := range testCases {
		if got := TemplateLabel(id); got != want {
			t.Errorf("TemplateLabel(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestTemplateOptions(t *testing.T) {
	got := TemplateOptions([]string{"demand-letter", "eviction-notice"})
	want := []TemplateOption{
		{Value: "", Label: CustomTemplateLabel},
		{Value: "demand-letter", Label: "Demand Letter"},
		{Value: "eviction-notice", Label: "Eviction Notice"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TemplateOptions mismatch (-want +got):\n%s", diff)
	}

	t.Run("No ids keeps the custom option", func(t *testing.T) {
		got := TemplateOptions(nil)
		if len(got) != 1 || got[0] != CustomTemplateOption() {
			t.Errorf("Expected only the custom option, got %+v", got)
		}
	})
}

func TestNoticeIDUnmarshal(t *testing.T) {
	testCases := []struct {
		raw  string
		want NoticeID
	}{
		{raw: `7`, want: "7"},
		{raw: `"a1b2"`, want: "a1b2"},
		{raw: `null`, want: ""},
	}

	for _, tc := range testCases {
		var id NoticeID
		if err := json.Unmarshal([]byte(tc.raw), &id); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tc.raw, err)
		}
		if id != tc.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tc.raw, id, tc.want)
		}
	}

	var id NoticeID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Error("Expected an object id to be rejected")
	}
}

func TestFormTrimmed(t *testing.T) {
	f := Form{
		Party1:    "  A \n",
		Party2:    "\tB",
		Issue:     " issue ",
		Template:  " keep ",
		Draft:     " draft ",
		Recipient: " a@b ",
	}

	got := f.Trimmed()
	want := Form{Party1: "A", Party2: "B", Issue: "issue", Template: " keep ", Draft: " draft ", Recipient: "a@b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Trimmed mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPageData(t *testing.T) {
	originalConfig := config.AppConfig
	defer func() { config.AppConfig = originalConfig }()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Site.Name = "Test Desk"
	cfg.UI.BannerHideAfter = 3 * time.Second
	config.AppConfig = cfg

	req := httptest.NewRequest("GET", "/some/path", nil)
	pd := NewPageData(req)

	if pd.SiteName != "Test Desk" {
		t.Errorf("Expected SiteName 'Test Desk', got %s", pd.SiteName)
	}
	if pd.PageURL != "/some/path" {
		t.Errorf("Expected PageURL '/some/path', got %s", pd.PageURL)
	}
	if pd.Theme != config.LightTheme {
		t.Errorf("Expected default theme, got %s", pd.Theme)
	}
	if pd.BannerHideAfterMs != 3000 {
		t.Errorf("Expected 3000ms banner delay, got %d", pd.BannerHideAfterMs)
	}
	if !pd.AllowThemeSwitching {
		t.Error("Expected theme switching to be allowed")
	}
}
